package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/verbump/pkg/deps"
	"github.com/matzehuels/verbump/pkg/deps/search"
	"github.com/matzehuels/verbump/pkg/pipeline"
	"github.com/matzehuels/verbump/pkg/semver"
)

// bumpCommand creates the bump command.
func (c *CLI) bumpCommand() *cobra.Command {
	var (
		paths      []string
		ignore     []string
		names      []string
		agentNames []string
		dryRun     bool
		noInstall  bool
	)

	cmd := &cobra.Command{
		Use:   "bump [major|minor|patch|premajor|preminor|prepatch|prerelease|<version>]",
		Short: "Bump the version of packages",
		Long: `Bump increments the version field of every package found. The release defaults
to patch. Prerelease kinds take their identifier from --pre:

  verbump bump minor              1.4.2 -> 1.5.0
  verbump bump preminor --pre rc  1.4.2 -> 1.5.0-rc.1
  verbump bump prerelease         1.5.0-rc.1 -> 1.5.0-rc.2
  verbump bump 2.0.0              1.4.2 -> 2.0.0`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config.Bump
			if len(args) == 1 {
				cfg.Release = args[0]
			}

			release, err := semver.ParseRelease(cfg.Release, semver.WithPrerelease(cfg.Pre), semver.WithBuild(cfg.Build))
			if err != nil {
				return err
			}

			agents, err := parseAgents(agentNames)
			if err != nil {
				return err
			}
			packages, err := search.Search(paths, search.Options{Packages: names, Agents: agents, Ignore: ignore})
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(nil, loggerFromContext(ctx))
			runner.Exec = c.exec
			results, err := runner.Bump(ctx, packages, release)
			if err != nil {
				return err
			}

			printInfo(c.Out, "Bumping %d %s (%s)", len(results), plural(len(results), "package", "packages"), release)
			fmt.Fprintln(c.Out, bumpTable(results))
			if dryRun {
				printInfo(c.Out, "Dry run, nothing written")
				return nil
			}

			if err := runner.ApplyBump(ctx, results); err != nil {
				return err
			}
			for _, r := range results {
				printSuccess(c.Out, "%s %s %s %s", r.Package.Name(), r.From, iconArrow, r.To)
				printFile(c.Out, r.Package.Path())
			}

			if !cfg.Install || noInstall {
				return nil
			}
			bumped := make([]deps.Package, len(results))
			for i, r := range results {
				bumped[i] = r.Package
			}
			return runner.RefreshLockfiles(ctx, bumped, true)
		},
	}

	f := cmd.Flags()
	f.StringSliceVarP(&paths, "path", "p", []string{"."}, "directories or manifests to search")
	f.StringSliceVar(&ignore, "ignore", nil, "glob patterns of manifests to skip, e.g. examples/**")
	f.StringSliceVar(&names, "package", nil, "only bump these packages")
	f.StringSliceVar(&agentNames, "agent", nil, "only bump packages of these agents (npm, pnpm, yarn, cargo, tauri)")
	f.String("pre", "", "prerelease identifier for pre* releases, e.g. beta")
	f.String("build", "", "build metadata to attach, e.g. sha.5114f85")
	f.BoolVar(&dryRun, "dry-run", false, "preview changes without writing")
	f.BoolVar(&noInstall, "no-install", false, "do not refresh lockfiles after writing")

	_ = c.viper.BindPFlag("bump.pre", f.Lookup("pre"))
	_ = c.viper.BindPFlag("bump.build", f.Lookup("build"))

	return cmd
}
