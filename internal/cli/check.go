package cli

import (
	"context"
	"fmt"
	"iter"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/pomcheck/pkg/errors"
	"github.com/matzehuels/pomcheck/pkg/manifest"
	"github.com/matzehuels/pomcheck/pkg/pom"
	"github.com/matzehuels/pomcheck/pkg/upgrade"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	manifest string // check the coordinates of a manifest instead of descriptors
}

func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report available upgrades",
		Long: `Report available upgrades for the dependencies and build plugins of
pom.xml files. Directories are searched recursively; the default is the
current directory.

For every dependency that is behind, the report shows the newest release of
its minor line, of its major line, and of every newer major line.

Examples:
  pomcheck check                           # ./**/pom.xml
  pomcheck check service/pom.xml lib/      # specific descriptors
  pomcheck check --manifest deps.json      # coordinates from a manifest`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.manifest, "manifest", "m", "", "check the coordinates recorded in a manifest file")

	return cmd
}

func (c *CLI) runCheck(ctx context.Context, opts checkOpts, args []string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	if opts.manifest != "" && len(args) > 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "paths cannot be combined with --manifest")
	}

	checker, err := c.newChecker(logger)
	if err != nil {
		return err
	}

	var t tally
	if opts.manifest != "" {
		m, err := manifest.Load(opts.manifest)
		if err != nil {
			return err
		}
		if err := c.checkSource(ctx, checker, opts.manifest, m.Coordinates(), &t); err != nil {
			return err
		}
	} else {
		if len(args) == 0 {
			args = []string{"."}
		}
		parser := c.newParser(logger)
		for path := range descriptors(ctx, logger, args) {
			deps := parseDescriptor(logger, parser, path)
			if err := c.checkSource(ctx, checker, path, deps, &t); err != nil {
				return err
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.checked == 0 {
		printInfo(c.out, "No dependencies found")
		return nil
	}

	printSummary(c.out, t.checked, t.upgradeable, t.unavailable)
	if t.unavailable > 0 {
		printWarning(c.out, "%d dependencies could not be checked; run with -v for details", t.unavailable)
	}
	prog.done(fmt.Sprintf("Checked %d dependencies", t.checked))
	return nil
}

// tally accumulates check totals across sources.
type tally struct {
	checked, upgradeable, unavailable int
}

// checkSource prints the heading for source and the reports of its
// dependencies. The checker is shared across sources so a coordinate
// declared by several modules is fetched once.
func (c *CLI) checkSource(ctx context.Context, checker *upgrade.Checker, source string, deps []pom.Dependency, t *tally) error {
	printSource(c.out, source)
	if len(deps) == 0 {
		return nil
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Checking %d dependencies...", len(deps)))
	if stderrIsTerminal() {
		spinner.Start()
	}
	results, err := checker.Check(ctx, deps)
	spinner.Stop()
	if err != nil {
		return err
	}

	t.checked += len(results)
	for _, r := range results {
		if r.Unavailable() {
			t.unavailable++
			continue
		}
		if lines := r.Report.Lines(); len(lines) > 0 {
			t.upgradeable++
			printReport(c.out, lines)
		}
	}
	return nil
}

// parseDescriptor returns the dependencies of one descriptor. A descriptor
// that fails part way keeps what was read before the failure.
func parseDescriptor(logger *log.Logger, parser *pom.Parser, path string) []pom.Dependency {
	var deps []pom.Dependency
	for dep, err := range parser.Parse(path) {
		if err != nil {
			logger.Errorf("Skipping rest of descriptor: %v", err)
			break
		}
		deps = append(deps, dep)
	}
	return deps
}

// collect parses every descriptor found under paths. Descriptors that fail
// to parse are logged and the rest are still collected.
func (c *CLI) collect(ctx context.Context, logger *log.Logger, paths []string) []pom.Dependency {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var deps []pom.Dependency
	for dep, err := range c.newParser(logger).ParseAll(descriptors(ctx, logger, paths)) {
		if err != nil {
			logger.Errorf("Skipping rest of descriptor: %v", err)
			continue
		}
		deps = append(deps, dep)
	}
	logger.Debugf("Collected %d dependencies", len(deps))
	return deps
}

// descriptors yields the descriptor files under paths, logging walk errors.
// It stops when ctx is cancelled.
func descriptors(ctx context.Context, logger *log.Logger, paths []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for path, err := range pom.Discover(paths, logger.Warnf) {
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				logger.Warnf("%v", err)
				continue
			}
			logger.Debugf("Parsing %s", path)
			if !yield(path) {
				return
			}
		}
	}
}
