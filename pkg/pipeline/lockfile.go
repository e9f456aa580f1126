package pipeline

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/matzehuels/verbump/pkg/deps"
	"github.com/matzehuels/verbump/pkg/errors"
)

// Exec runs name with args in dir.
type Exec func(ctx context.Context, dir, name string, args ...string) error

// RunCommand is the default [Exec]. The command's combined output is
// attached to the error when it fails.
func RunCommand(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "%s %s in %s\n%s",
			name, strings.Join(args, " "), dir, strings.TrimSpace(string(out)))
	}
	return nil
}

// Command is one lockfile refresh.
type Command struct {
	Dir  string
	Args []string
}

func (c Command) String() string { return strings.Join(c.Args, " ") }

// LockfileCommands returns the commands that bring lockfiles in line with
// the rewritten manifests of packages, once per directory. Node packages
// run "<agent> install" only when their lockfile already exists. Cargo
// packages run "cargo update", with --workspace when workspace is set.
func LockfileCommands(packages []deps.Package, workspace bool) []Command {
	var cmds []Command
	seen := make(map[string]bool)
	for _, pkg := range packages {
		dir := filepath.Dir(pkg.Path())
		a := pkg.Agent()

		var args []string
		switch {
		case a.IsNode():
			if _, err := os.Stat(filepath.Join(dir, a.Lockfile())); err != nil {
				continue
			}
			args = []string{a.String(), "install"}
		case a == deps.Cargo:
			args = []string{"cargo", "update"}
			if workspace {
				args = append(args, "--workspace")
			}
		default:
			continue
		}

		key := dir + "\x00" + strings.Join(args, " ")
		if seen[key] {
			continue
		}
		seen[key] = true
		cmds = append(cmds, Command{Dir: dir, Args: args})
	}
	return cmds
}

// RefreshLockfiles runs [LockfileCommands] through r.Exec, stopping at the
// first failure.
func (r *Runner) RefreshLockfiles(ctx context.Context, packages []deps.Package, workspace bool) error {
	run := r.Exec
	if run == nil {
		run = RunCommand
	}
	for _, c := range LockfileCommands(packages, workspace) {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.Logger.Info("refreshing lockfile", "dir", c.Dir, "command", c)
		if err := run(ctx, c.Dir, c.Args[0], c.Args[1:]...); err != nil {
			return err
		}
	}
	return nil
}
