package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/pomcheck/pkg/errors"
	"github.com/matzehuels/pomcheck/pkg/manifest"
	"github.com/matzehuels/pomcheck/pkg/rewrite"
)

func (c *CLI) replaceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "replace [paths...]",
		Short: "Write manifest versions into pom.xml properties",
		Long: `Load the manifest named by the MAVEN_DEPS_VERSION environment variable and
set every property it records to the recorded version in each pom.xml found
under paths. Files whose content changes are marked [UPDT], the rest [KEEP].

MAVEN_DEPS_VERSION may also be set in a .env file in the working directory.

Example:
  pomcheck extract -o deps.json
  # edit deps.json
  MAVEN_DEPS_VERSION=deps.json pomcheck replace .`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReplace(cmd.Context(), args)
		},
	}
}

func (c *CLI) runReplace(ctx context.Context, args []string) error {
	logger := loggerFromContext(ctx)

	path := os.Getenv(envManifest)
	if path == "" {
		return perrors.New(perrors.ErrCodeConfig, "env %s is not set", envManifest)
	}
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	props := m.Properties()
	if len(props) == 0 {
		return perrors.New(perrors.ErrCodeConfig, "manifest %s records no version properties", path)
	}
	logger.Debugf("Loaded %d properties from %s", len(props), path)

	if len(args) == 0 {
		args = []string{"."}
	}

	rw := rewrite.New(props)
	failed := 0
	for pomfile := range descriptors(ctx, logger, args) {
		changed, err := rw.Apply(pomfile)
		if err != nil {
			failed++
			printError(c.out, "%s: %s", pomfile, perrors.UserMessage(err))
			continue
		}
		printRewrite(c.out, pomfile, changed)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return perrors.New(perrors.ErrCodeInternal, "%d descriptors could not be rewritten", failed)
	}
	return nil
}
