package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"
)

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "recompile a statement file whenever the vmod tree or the file itself changes",
		ArgsUsage: "<statement-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "vmods", Usage: "directory of vmod subdirectories", Value: "vmods"},
			&cli.StringFlag{Name: "cache", Usage: "signature cache path (':memory:' disables persistence)", Value: "vclc.sigcache"},
		},
		Action: runWatch,
	}
}

func runWatch(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("watch: expected exactly one statement file")
	}
	stmtPath := c.Args().First()
	vmodsDir := c.String("vmods")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	if err := addWatchTree(watcher, vmodsDir); err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(stmtPath)); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	recompile := func() {
		env, err := newEnvironment(vmodsDir, c.String("cache"))
		if err != nil {
			fmt.Fprintln(os.Stderr, "vclc: reload:", err)
			return
		}
		defer env.Close()

		src, err := os.ReadFile(stmtPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "vclc: read:", err)
			return
		}
		st := env.newState(string(src))
		if !st.EvalCallStatement() {
			_ = reportDiagnostics(env.diag)
			return
		}
		if err := env.emitOutput(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "vclc: emit:", err)
		}
	}

	recompile()
	fmt.Fprintf(os.Stderr, "vclc: watching %s and %s for changes (ctrl-c to stop)\n", stmtPath, vmodsDir)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			recompile()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "vclc: watch error:", err)
		}
	}
}

// addWatchTree registers root and every immediate vmod subdirectory
// with watcher: fsnotify watches are non-recursive, and a vmod
// directory is one flat level deep (internal/modules.Loader.LoadAll),
// so a two-level walk is sufficient.
func addWatchTree(watcher *fsnotify.Watcher, root string) error {
	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("watch: reading %s: %w", root, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := watcher.Add(filepath.Join(root, e.Name())); err != nil {
				return fmt.Errorf("watch: %w", err)
			}
		}
	}
	return nil
}
