package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func MainCommand(ctx context.Context) *cli.Command {
	cfg := &MainConfig{Ctx: ctx}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "examdiff").
		WithSynopsis("examdiff [opts] command [opts]").
		WithDescription("examdiff compares files, merges them and compares directory trees.").
		WithOpts(opts...).
		WithSubs(
			DiffCommand(cfg),
			MergeCommand(cfg),
			DirCommand(cfg))
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithSynopsis("diff [opts] <from> <to>").
		WithDescription("diff two files line by line").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("merge").
		WithAliases("m", "me").
		WithSynopsis("merge [opts] <base> <yours> <theirs>").
		WithDescription("three-way merge two files against a common base").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return merge(cfg, cc, args)
		})
	cfg.Merge = cmd
	return cmd
}

func DirCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DirConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "include",
			Description: "include glob, repeatable",
			Type:        cli.NamedFuncOpt(appendOpt(&cfg.Include), "(glob)"),
		},
		&cli.Opt{
			Name:        "exclude",
			Description: "exclude glob, repeatable",
			Type:        cli.NamedFuncOpt(appendOpt(&cfg.Exclude), "(glob)"),
		})
	cmd := cli.NewCommand("dir").
		WithAliases("tree").
		WithSynopsis("dir [opts] <left> <right>").
		WithDescription("compare two directory trees").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dir(cfg, cc, args)
		})
	cfg.Dir = cmd
	return cmd
}

func appendOpt(dst *[]string) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		*dst = append(*dst, v)
		return v, nil
	})
}
