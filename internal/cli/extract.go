package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pomcheck/pkg/manifest"
)

// extractOpts holds the command-line flags for the extract command.
type extractOpts struct {
	output string // output file path (stdout if empty)
}

func (c *CLI) extractCommand() *cobra.Command {
	var opts extractOpts

	cmd := &cobra.Command{
		Use:   "extract [paths...]",
		Short: "Write the dependency manifest of pom.xml files",
		Long: `Parse pom.xml files and write a JSON manifest of every dependency and
build plugin, keyed by groupId and artifactId. Each entry records the
resolved version and the property it came from, if any.

The manifest can be edited and fed back with "pomcheck replace", or checked
with "pomcheck check --manifest".

Examples:
  pomcheck extract                         # ./**/pom.xml to stdout
  pomcheck extract -o deps.json services/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExtract(cmd.Context(), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func (c *CLI) runExtract(ctx context.Context, opts extractOpts, args []string) error {
	logger := loggerFromContext(ctx)

	deps := c.collect(ctx, logger, args)
	if err := ctx.Err(); err != nil {
		return err
	}

	m := manifest.Build(deps)
	if opts.output == "" {
		return m.Write(c.out)
	}
	if err := m.Save(opts.output); err != nil {
		return err
	}
	printSuccess(c.out, "Wrote %d artifacts", m.Len())
	printFile(c.out, opts.output)
	return nil
}
