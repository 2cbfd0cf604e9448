package config

import (
	"os"
	"path/filepath"
	"testing"

	domainErrors "github.com/rentec/pr-migrations/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEvent(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))
	return path
}

func TestPRNumberFromEvent(t *testing.T) {
	t.Run("should read pull_request.number", func(t *testing.T) {
		path := writeEvent(t, `{"action":"synchronize","number":7,"pull_request":{"number":7,"body":null}}`)

		number, err := PRNumberFromEvent(path)

		require.NoError(t, err)
		assert.Equal(t, 7, number)
	})

	t.Run("should fall back to the top level number", func(t *testing.T) {
		path := writeEvent(t, `{"number":12}`)

		number, err := PRNumberFromEvent(path)

		require.NoError(t, err)
		assert.Equal(t, 12, number)
	})

	t.Run("should reject payloads without a pull request", func(t *testing.T) {
		path := writeEvent(t, `{"ref":"refs/heads/main"}`)

		_, err := PRNumberFromEvent(path)

		assert.ErrorIs(t, err, domainErrors.ErrInvalidEventPayload)
	})

	t.Run("should reject malformed json", func(t *testing.T) {
		path := writeEvent(t, `{"number":`)

		_, err := PRNumberFromEvent(path)

		assert.ErrorIs(t, err, domainErrors.ErrInvalidEventPayload)
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		_, err := PRNumberFromEvent(filepath.Join(t.TempDir(), "missing.json"))

		assert.ErrorIs(t, err, domainErrors.ErrInvalidEventPayload)
	})

	t.Run("should report a missing number without a path", func(t *testing.T) {
		_, err := PRNumberFromEvent("")

		assert.ErrorIs(t, err, domainErrors.ErrPRNumberMissing)
	})
}

func TestResolvePRNumber(t *testing.T) {
	t.Run("should prefer the flag value", func(t *testing.T) {
		t.Setenv(EventPathEnv, writeEvent(t, `{"number":3}`))

		number, err := ResolvePRNumber(9)

		require.NoError(t, err)
		assert.Equal(t, 9, number)
	})

	t.Run("should use the event payload when the flag is unset", func(t *testing.T) {
		t.Setenv(EventPathEnv, writeEvent(t, `{"pull_request":{"number":3}}`))

		number, err := ResolvePRNumber(0)

		require.NoError(t, err)
		assert.Equal(t, 3, number)
	})

	t.Run("should fail when neither is available", func(t *testing.T) {
		t.Setenv(EventPathEnv, "")

		_, err := ResolvePRNumber(0)

		assert.ErrorIs(t, err, domainErrors.ErrPRNumberMissing)
	})
}
