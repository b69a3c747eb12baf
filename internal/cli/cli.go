// Package cli implements the pomcheck command-line interface.
//
// # Commands
//
//   - check: report available upgrades for descriptors or a manifest
//   - extract: write the dependency manifest of descriptors
//   - replace: write manifest versions back into descriptor properties
//   - completion: generate shell completion scripts
//
// # Configuration
//
// Settings are resolved in order of increasing precedence: built-in
// defaults, the TOML config file (./pomcheck.toml or --config), environment
// variables (a .env file in the working directory is loaded first), and
// command-line flags.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context; library packages receive a Warnf callback.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pomcheck/pkg/buildinfo"
	"github.com/matzehuels/pomcheck/pkg/integrations/maven"
	"github.com/matzehuels/pomcheck/pkg/observability"
	"github.com/matzehuels/pomcheck/pkg/pom"
	"github.com/matzehuels/pomcheck/pkg/upgrade"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and the config file.
	appName = "pomcheck"

	// defaultConfigFile is read from the working directory when --config is unset.
	defaultConfigFile = appName + ".toml"

	// envManifest names the manifest consumed by the replace command.
	envManifest = "MAVEN_DEPS_VERSION"

	// envRepository overrides the repository URL from the config file.
	envRepository = "POMCHECK_REPOSITORY"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out    io.Writer
	flags  globalFlags
	config Config
}

// globalFlags holds the persistent flags of the root command.
type globalFlags struct {
	verbose bool
	config  string
	Config
}

// New creates a new CLI instance with a default logger writing to w.
// Command output goes to stdout unless changed with [CLI.SetOutput].
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
		config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output (reports, manifests, status lines).
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "pomcheck reports available upgrades for Maven dependencies",
		Long:              `pomcheck reads the dependencies and build plugins declared in pom.xml files, looks up the versions published in a Maven repository, and reports the newest release of the same minor line, the same major line, and every newer major line.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.flags.config, "config", defaultConfigFile, "config file")
	flags.StringVar(&c.flags.Repository, "repository", c.config.Repository, "Maven repository URL")
	flags.DurationVar(&c.flags.Timeout, "timeout", c.config.Timeout, "per-request timeout")
	flags.IntVar(&c.flags.Concurrency, "concurrency", c.config.Concurrency, "parallel repository requests")

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.extractCommand())
	root.AddCommand(c.replaceCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup resolves configuration and attaches the logger before any command runs.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.flags.verbose {
		c.SetLogLevel(LogDebug)
	}

	if err := godotenv.Load(); err == nil {
		c.Logger.Debug("loaded .env")
	}

	flags := cmd.Flags()
	cfg, err := loadConfig(c.flags.config, flags.Changed("config"))
	if err != nil {
		return err
	}
	cfg.applyEnv(os.Getenv)
	if flags.Changed("repository") {
		cfg.Repository = c.flags.Repository
	}
	if flags.Changed("timeout") {
		cfg.Timeout = c.flags.Timeout
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = c.flags.Concurrency
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	c.config = cfg

	observability.SetCheckHooks(logHooks{logger: c.Logger})
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Factories
// =============================================================================

// newParser creates a descriptor parser using the configured plugin groups.
func (c *CLI) newParser(logger *log.Logger) *pom.Parser {
	return pom.NewParser(
		pom.WithPluginGroups(c.config.PluginGroups),
		pom.WithLogger(logger.Warnf),
	)
}

// newChecker creates an upgrade checker for the configured repository.
func (c *CLI) newChecker(logger *log.Logger) (*upgrade.Checker, error) {
	client, err := maven.NewClient(
		maven.WithRepository(c.config.Repository),
		maven.WithTimeout(c.config.Timeout),
	)
	if err != nil {
		return nil, err
	}
	return upgrade.NewChecker(client, upgrade.Options{
		Concurrency: c.config.Concurrency,
		Logger:      logger.Warnf,
	})
}
