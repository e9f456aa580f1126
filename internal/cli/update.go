package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/verbump/pkg/deps"
	"github.com/matzehuels/verbump/pkg/deps/search"
	"github.com/matzehuels/verbump/pkg/errors"
	"github.com/matzehuels/verbump/pkg/pipeline"
	"github.com/matzehuels/verbump/pkg/semver"
)

// updateFlags holds the update flags that are not config keys.
type updateFlags struct {
	paths     []string
	ignore    []string
	dryRun    bool
	yes       bool
	refresh   bool
	noInstall bool
}

// updateCommand creates the update command.
func (c *CLI) updateCommand() *cobra.Command {
	var flags updateFlags

	cmd := &cobra.Command{
		Use:   "update [major|minor|patch]",
		Short: "Update dependency requirements to the newest matching versions",
		Long: `Update rewrites dependency requirements to the newest published version they
allow. A release kind widens (major, minor) or narrows (patch) each
requirement before matching, keeping its operator:

  verbump update            ^1.2.0 -> ^1.4.3
  verbump update major      ^1.2.0 -> ^3.0.1
  verbump update patch      ^1.2.0 -> ^1.2.9

Changes are previewed and confirmed before any file is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				c.config.Update.Release = args[0]
			}
			return c.runUpdate(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.StringSliceVarP(&flags.paths, "path", "p", []string{"."}, "directories or manifests to search")
	f.StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns of manifests to skip, e.g. examples/**")
	f.StringSlice("package", nil, "only update these packages")
	f.StringSlice("agent", nil, "only update packages of these agents (npm, pnpm, yarn, cargo)")
	f.StringSliceP("dependency", "d", nil, "only update these dependencies")
	f.StringSliceP("skip-dependency", "s", nil, "never update these dependencies")
	f.Bool("peer", false, "update peer dependencies instead of the others")
	f.IntP("jobs", "j", 0, "concurrent registry lookups (0 for no limit)")
	f.BoolVar(&flags.dryRun, "dry-run", false, "preview changes without writing")
	f.BoolVarP(&flags.yes, "yes", "y", false, "apply every change without asking")
	f.BoolVar(&flags.refresh, "refresh", false, "bypass the response cache")
	f.BoolVar(&flags.noInstall, "no-install", false, "do not refresh lockfiles after writing")
	f.Bool("select-all", true, "check every change in the confirmation list")

	for key, flag := range map[string]string{
		"update.packages":   "package",
		"update.agents":     "agent",
		"update.include":    "dependency",
		"update.exclude":    "skip-dependency",
		"update.peer":       "peer",
		"update.jobs":       "jobs",
		"update.select_all": "select-all",
	} {
		_ = c.viper.BindPFlag(key, f.Lookup(flag))
	}

	return cmd
}

func (c *CLI) runUpdate(cmd *cobra.Command, flags updateFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := c.config.Update

	release, err := parseUpdateRelease(cfg.Release)
	if err != nil {
		return err
	}
	agents, err := parseAgents(cfg.Agents)
	if err != nil {
		return err
	}

	packages, err := search.Search(flags.paths, search.Options{
		Packages: cfg.Packages,
		Agents:   agents,
		Ignore:   flags.ignore,
	})
	if err != nil {
		return err
	}
	logger.Debug("found packages", "count", len(packages))

	runner, backend, err := c.newRunner(ctx, flags.refresh)
	if err != nil {
		return err
	}
	defer backend.Close()

	prog := newProgress(logger)
	spin := newSpinner(ctx, c.Err, "Fetching versions")
	if isTerminal(c.Err) {
		spin.Start()
	}
	results, err := runner.Update(ctx, packages, pipeline.UpdateOptions{
		Release: release,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
		Peer:    cfg.Peer,
		Jobs:    cfg.Jobs,
	})
	spin.Stop()
	if err != nil {
		return err
	}

	count := 0
	for _, r := range results {
		count += len(r.Targets)
	}
	prog.done("Resolved targets")

	if count == 0 {
		printSuccess(c.Out, "All dependencies are up to date")
		return nil
	}
	c.printUpdatePreview(results, count)

	if flags.dryRun {
		printInfo(c.Out, "Dry run, nothing written")
		return nil
	}

	if !flags.yes {
		if !isTerminal(c.In) {
			return errors.New(errors.ErrCodeInvalidInput, "stdin is not a terminal; pass --yes to apply without confirmation")
		}
		results, err = chooseTargets(ctx, c.In, c.Err, results, cfg.SelectAll)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			printInfo(c.Out, "Nothing selected")
			return nil
		}
	}

	if err := runner.Apply(ctx, results); err != nil {
		return err
	}
	for _, r := range results {
		printSuccess(c.Out, "Updated %d %s in %s", len(r.Targets), plural(len(r.Targets), "dependency", "dependencies"), r.Package.Name())
		printFile(c.Out, r.Package.Path())
	}

	if !cfg.Install || flags.noInstall {
		return nil
	}
	updated := make([]deps.Package, len(results))
	for i, r := range results {
		updated[i] = r.Package
	}
	return runner.RefreshLockfiles(ctx, updated, false)
}

func (c *CLI) printUpdatePreview(results []pipeline.UpdateResult, count int) {
	printInfo(c.Out, "%d %s can be updated in %d %s",
		count, plural(count, "dependency", "dependencies"),
		len(results), plural(len(results), "package", "packages"))
	fmt.Fprintln(c.Out, updateTable(results))
}

// parseUpdateRelease accepts an empty string or a release kind. Whether the
// kind may widen requirements is checked by [pipeline.UpdateOptions.Validate].
func parseUpdateRelease(s string) (*semver.Release, error) {
	if s == "" {
		return nil, nil
	}
	r, err := semver.ParseRelease(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "update release must be major, minor or patch, got %q", s)
	}
	return &r, nil
}

func parseAgents(names []string) ([]deps.Agent, error) {
	agents := make([]deps.Agent, 0, len(names))
	for _, n := range names {
		a, err := deps.ParseAgent(n)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "--agent")
		}
		agents = append(agents, a)
	}
	return agents, nil
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
