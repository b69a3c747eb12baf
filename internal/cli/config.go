package cli

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	perrors "github.com/matzehuels/pomcheck/pkg/errors"
	"github.com/matzehuels/pomcheck/pkg/integrations"
	"github.com/matzehuels/pomcheck/pkg/integrations/maven"
	"github.com/matzehuels/pomcheck/pkg/pom"
	"github.com/matzehuels/pomcheck/pkg/upgrade"
)

// Config is the resolved configuration shared by all commands.
type Config struct {
	Repository   string
	Timeout      time.Duration
	Concurrency  int
	PluginGroups map[string]string
}

// fileConfig mirrors pomcheck.toml:
//
//	repository = "https://repo1.maven.org/maven2/"
//	timeout = "10s"
//	concurrency = 4
//
//	[plugin_groups]
//	maven-jar-plugin = "org.apache.maven.plugins"
type fileConfig struct {
	Repository   string            `toml:"repository"`
	Timeout      string            `toml:"timeout"`
	Concurrency  int               `toml:"concurrency"`
	PluginGroups map[string]string `toml:"plugin_groups"`
}

func defaultConfig() Config {
	return Config{
		Repository:   maven.DefaultRepository,
		Timeout:      integrations.DefaultTimeout,
		Concurrency:  upgrade.DefaultConcurrency,
		PluginGroups: pom.DefaultPluginGroups(),
	}
}

// loadConfig reads the TOML file at path on top of the defaults. A missing
// file is only an error when it was asked for explicitly. Plugin groups from
// the file extend the built-in table.
func loadConfig(path string, required bool) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, perrors.Wrap(perrors.ErrCodeConfig, err, "read config %s", path)
	}

	var fc fileConfig
	md, err := toml.Decode(string(data), &fc)
	if err != nil {
		return cfg, perrors.Wrap(perrors.ErrCodeConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, perrors.New(perrors.ErrCodeConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if fc.Repository != "" {
		cfg.Repository = fc.Repository
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return cfg, perrors.Wrap(perrors.ErrCodeConfig, err, "%s: invalid timeout %q", path, fc.Timeout)
		}
		cfg.Timeout = d
	}
	if fc.Concurrency != 0 {
		cfg.Concurrency = fc.Concurrency
	}
	maps.Copy(cfg.PluginGroups, fc.PluginGroups)
	return cfg, nil
}

// applyEnv overrides settings from environment variables.
func (cfg *Config) applyEnv(getenv func(string) string) {
	if repo := strings.TrimSpace(getenv(envRepository)); repo != "" {
		cfg.Repository = repo
	}
}

func (cfg Config) validate() error {
	if err := perrors.ValidateURL(cfg.Repository); err != nil {
		return perrors.Wrap(perrors.ErrCodeConfig, err, "invalid repository %q", cfg.Repository)
	}
	if cfg.Timeout <= 0 {
		return perrors.New(perrors.ErrCodeConfig, "timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.Concurrency < 1 {
		return perrors.New(perrors.ErrCodeConfig, "concurrency must be at least 1, got %d", cfg.Concurrency)
	}
	return nil
}
