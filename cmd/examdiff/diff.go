package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/gwaghmar/examdiff/dircmp"
	"github.com/gwaghmar/examdiff/libdiff"
	"github.com/gwaghmar/examdiff/report"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	fileCfg, err := cfg.load()
	if err != nil {
		return err
	}
	opts := cfg.diffOpts(fileCfg)
	cfg.largeLimit = fileCfg.Diff.LargeFileLimit
	if cfg.Watch {
		return watchDiff(cfg, cc, args[0], args[1], opts)
	}
	differs, err := diffOnce(cfg, cc, args[0], args[1], opts)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffOnce(cfg *DiffConfig, cc *cli.Context, fromPath, toPath string, opts *libdiff.Options) (bool, error) {
	from, err := readInput(cc, fromPath)
	if err != nil {
		return false, err
	}
	to, err := readInput(cc, toPath)
	if err != nil {
		return false, err
	}
	if dircmp.IsBinary(from) || dircmp.IsBinary(to) {
		if bytes.Equal(from, to) {
			return false, nil
		}
		_, err := fmt.Fprintf(cc.Out, "Binary files %s and %s differ\n", fromPath, toPath)
		return true, err
	}
	if lim := cfg.largeLimit; lim > 0 && (int64(len(from)) > lim || int64(len(to)) > lim) {
		if bytes.Equal(from, to) {
			return false, nil
		}
		_, err := fmt.Fprintf(cc.Out, "Files %s and %s differ (over %d bytes, not line diffed)\n",
			fromPath, toPath, lim)
		return true, err
	}
	res, err := libdiff.DiffContext(cfg.Ctx, string(from), string(to), opts)
	if err != nil {
		return false, err
	}
	switch {
	case cfg.HTML:
		err = report.WriteHTML(cc.Out, fromPath, toPath, res)
	case cfg.Unified:
		err = report.WriteUnified(cc.Out, fromPath, toPath, res)
	default:
		err = report.WriteTerminal(cc.Out, fromPath, toPath, res, cfg.colors(cc.Out))
	}
	if err != nil {
		return false, err
	}
	return len(res.Hunks) > 0, nil
}

func readInput(cc *cli.Context, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cc.In)
	}
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	return d, nil
}
