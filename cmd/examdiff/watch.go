package main

import (
	"fmt"
	"time"

	"github.com/gwaghmar/examdiff/debug"
	"github.com/gwaghmar/examdiff/libdiff"

	"github.com/fsnotify/fsnotify"
	"github.com/scott-cotton/cli"
)

// watchDiff rediffs the inputs each time one of them changes, until
// interrupted.
func watchDiff(cfg *DiffConfig, cc *cli.Context, fromPath, toPath string, opts *libdiff.Options) error {
	if fromPath == "-" || toPath == "-" {
		return fmt.Errorf("%w: cannot watch stdin", cli.ErrUsage)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	for _, p := range []string{fromPath, toPath} {
		if err := w.Add(p); err != nil {
			return fmt.Errorf("could not watch %q: %w", p, err)
		}
	}
	if _, err := diffOnce(cfg, cc, fromPath, toPath, opts); err != nil {
		return err
	}
	for {
		select {
		case <-cfg.Ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			if debug.Watch() {
				debug.Logf("watch: %s\n", ev)
			}
			// editors often replace files, dropping the watch
			if ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
				if err := rewatch(w, ev.Name); err != nil {
					return fmt.Errorf("could not rewatch %q: %w", ev.Name, err)
				}
			}
			if _, err := fmt.Fprintln(cc.Out, "---"); err != nil {
				return err
			}
			if _, err := diffOnce(cfg, cc, fromPath, toPath, opts); err != nil {
				return err
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

// rewatch re-adds a path after a rename or remove. The replacing inode
// may not exist yet when the event arrives, so retry briefly before
// giving up.
func rewatch(w *fsnotify.Watcher, name string) error {
	var err error
	for range 10 {
		if err = w.Add(name); err == nil {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return err
}
