package completion_helper

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// DefaultFlagComplete prints every flag name of cmd, one per line, so shells can
// complete flags of subcommands too.
func DefaultFlagComplete(_ context.Context, cmd *cli.Command) {
	w := cmd.Root().Writer
	for _, f := range cmd.Flags {
		for _, name := range f.Names() {
			prefix := "--"
			if len(name) == 1 {
				prefix = "-"
			}
			_, _ = fmt.Fprintln(w, prefix+name)
		}
	}
}
