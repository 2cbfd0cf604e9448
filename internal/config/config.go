package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	domainErrors "github.com/rentec/pr-migrations/internal/errors"
	"github.com/rentec/pr-migrations/internal/migrations"
	"github.com/rentec/pr-migrations/internal/regex"
)

type (
	Config struct {
		Owner          string      `toml:"owner,omitempty"`
		Repo           string      `toml:"repo,omitempty"`
		ServerURL      string      `toml:"server_url,omitempty"`
		APIURL         string      `toml:"api_url,omitempty"` // GitHub Enterprise REST endpoint
		MigrationsPath string      `toml:"migrations_path"`
		SummaryStyle   string      `toml:"summary_style"`
		Language       string      `toml:"language"`
		Label          LabelConfig `toml:"label"`

		// Token is only read from the environment and never written to disk.
		Token    string `toml:"-"`
		PathFile string `toml:"-"`
	}

	LabelConfig struct {
		Name        string `toml:"name"`
		Color       string `toml:"color"`
		Description string `toml:"description"`
	}
)

const (
	DefaultPath             = ".github/pr-migrations.toml"
	defaultLabelName        = "Database changes"
	defaultLabelColor       = "1778d3"
	defaultLabelDescription = "This pull request adds database migrations"
)

func Default() *Config {
	return &Config{
		MigrationsPath: migrations.DefaultPrefix,
		SummaryStyle:   string(migrations.StylePaired),
		Language:       LangEN,
		Label: LabelConfig{
			Name:        defaultLabelName,
			Color:       defaultLabelColor,
			Description: defaultLabelDescription,
		},
		PathFile: DefaultPath,
	}
}

// LoadEnvFile loads variables from .env style files. Missing files are not an error.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", p, err)
		}
	}
	return nil
}

// LoadConfig reads the TOML file at path on top of the defaults and applies the
// environment. A missing file is fine: the hook runs on defaults in most repos.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	cfg := Default()
	cfg.PathFile = path

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, domainErrors.ErrInvalidConfig.
				WithError(err).
				WithContext("path", path)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, domainErrors.ErrInvalidConfig.
			WithError(err).
			WithContext("path", path)
	}

	return cfg, nil
}

func SaveConfig(cfg *Config) error {
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("refusing to save invalid configuration: %w", err)
	}

	if cfg.PathFile == "" {
		return errors.New("config file path is not set")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.PathFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(cfg.PathFile)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// SetRepository accepts owner/name or a git remote URL.
func (c *Config) SetRepository(ref string) error {
	owner, repo, err := ParseRepository(ref)
	if err != nil {
		return err
	}
	c.Owner, c.Repo = owner, repo
	return nil
}

// Repository returns owner/name, or "" when unset.
func (c *Config) Repository() string {
	if c.Owner == "" || c.Repo == "" {
		return ""
	}
	return c.Owner + "/" + c.Repo
}

// ValidateForSync reports what is missing to talk to the API.
func (c *Config) ValidateForSync() error {
	if c.Repository() == "" {
		return domainErrors.ErrRepositoryMissing
	}
	if c.Token == "" {
		return domainErrors.ErrTokenMissing
	}
	return nil
}

func ParseRepository(ref string) (string, string, error) {
	ref = strings.TrimSpace(ref)
	if m := regex.RepoSlug.FindStringSubmatch(ref); m != nil {
		return m[1], m[2], nil
	}
	for _, re := range []*regexp.Regexp{regex.HTTPSRepo, regex.SSHRepo} {
		if m := re.FindStringSubmatch(ref); m != nil && !strings.Contains(m[3], "/") {
			return m[2], m[3], nil
		}
	}
	return "", "", domainErrors.ErrInvalidRepository.WithContext("repository", ref)
}

func (c *Config) applyEnv() error {
	if c.Token == "" {
		c.Token = getEnv("GITHUB_TOKEN", os.Getenv("GH_TOKEN"))
	}
	if c.ServerURL == "" {
		c.ServerURL = getEnv("GITHUB_SERVER_URL", migrations.DefaultServerURL)
	}
	if c.APIURL == "" {
		c.APIURL = os.Getenv("GITHUB_API_URL")
	}
	if lang := os.Getenv("PR_MIGRATIONS_LANG"); lang != "" {
		c.Language = lang
	}
	if c.Repository() == "" {
		if repo := os.Getenv("GITHUB_REPOSITORY"); repo != "" {
			if err := c.SetRepository(repo); err != nil {
				return err
			}
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func validateConfig(cfg *Config) error {
	if cfg.MigrationsPath == "" {
		return errors.New("migrations_path cannot be empty")
	}
	if cfg.Label.Name == "" {
		return errors.New("label.name cannot be empty")
	}
	if !regex.HexColor.MatchString(cfg.Label.Color) {
		return fmt.Errorf("label.color must be six hex digits without '#', got %q", cfg.Label.Color)
	}
	if _, err := migrations.NewRenderer(migrations.Style(cfg.SummaryStyle)); err != nil {
		return err
	}
	if !IsSupportedLanguage(cfg.Language) {
		return fmt.Errorf("language %q is not supported", cfg.Language)
	}
	return nil
}
