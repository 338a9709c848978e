package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gwaghmar/examdiff/libdiff"
	"github.com/gwaghmar/examdiff/merge3"

	"github.com/scott-cotton/cli"
)

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		cfg.Merge.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: merge requires 3 args, got %v", cli.ErrUsage, args)
	}
	fileCfg, err := cfg.load()
	if err != nil {
		return err
	}
	mOpts := fileCfg.MergeOptions()
	if cfg.YoursLabel != "" {
		mOpts.YoursLabel = cfg.YoursLabel
	}
	if cfg.TheirsLabel != "" {
		mOpts.TheirsLabel = cfg.TheirsLabel
	}

	texts := make([]string, 3)
	for i, p := range args {
		d, err := readInput(cc, p)
		if err != nil {
			return err
		}
		texts[i] = string(d)
	}
	res, err := merge3.MergeLines(cfg.Ctx,
		libdiff.Texts(libdiff.SplitLines(texts[0])),
		libdiff.Texts(libdiff.SplitLines(texts[1])),
		libdiff.Texts(libdiff.SplitLines(texts[2])),
		mOpts)
	if err != nil {
		return err
	}

	var w io.Writer = cc.Out
	if cfg.Out != "" {
		f, err := os.Create(cfg.Out)
		if err != nil {
			return fmt.Errorf("could not create %q: %w", cfg.Out, err)
		}
		defer f.Close()
		w = f
	}
	if _, err := io.WriteString(w, res.Text()); err != nil {
		return err
	}
	if res.HasConflicts() {
		fmt.Fprintf(os.Stderr, "%d conflicts\n", len(res.Conflicts))
		return cli.ExitCodeErr(1)
	}
	return nil
}
