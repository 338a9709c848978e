package main

import (
	"fmt"

	"github.com/gwaghmar/examdiff/config"
	"github.com/gwaghmar/examdiff/dircmp"
	"github.com/gwaghmar/examdiff/report"

	"github.com/scott-cotton/cli"
)

func dir(cfg *DirConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dir.Parse(cc, args)
	if err != nil {
		cfg.Dir.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: dir requires 2 args, got %v", cli.ErrUsage, args)
	}
	fileCfg, err := cfg.load()
	if err != nil {
		return err
	}
	dOpts, err := cfg.dirOpts(fileCfg)
	if err != nil {
		return err
	}
	c, err := dircmp.New(dOpts)
	if err != nil {
		return err
	}
	tree, err := c.CompareDirs(cfg.Ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if err := report.WriteTree(cc.Out, tree, cfg.colors(cc.Out), cfg.ChangedOnly); err != nil {
		return err
	}
	if tree.Root.Status.Changed() {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func (cfg *DirConfig) dirOpts(fileCfg *config.Config) (*dircmp.Options, error) {
	dOpts, err := fileCfg.DirOptions()
	if err != nil {
		return nil, err
	}
	if cfg.Recursive {
		dOpts.Recursive = true
	}
	if cfg.Mode != "" {
		mode, err := config.ParseMode(cfg.Mode)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		dOpts.Mode = mode
	}
	if cfg.Filter != "" {
		dOpts.Filter = cfg.Filter
	}
	if cfg.IgnoreHidden {
		dOpts.IgnoreHidden = true
	}
	if cfg.Workers != 0 {
		dOpts.Workers = cfg.Workers
	}
	dOpts.Include = append(dOpts.Include, cfg.Include...)
	dOpts.Exclude = append(dOpts.Exclude, cfg.Exclude...)
	return dOpts, nil
}
