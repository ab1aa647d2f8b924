package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/poflygogo/pox5fly-oj/internal/conf"
	"github.com/poflygogo/pox5fly-oj/pkg/harness"
	"github.com/poflygogo/pox5fly-oj/pkg/logging"
)

var (
	confPath    = pflag.String("config", "", "配置文件路径(可选)")
	caseDir     = pflag.String("dir", "", "测资目录,默认为目标程序同层的 test_case")
	timeLimitMs = pflag.Int("time", 3000, "单测试点时间限制(毫秒)")
	strict      = pflag.Bool("strict", false, "启用严格(逐字节)比对")
	repeat      = pflag.Int("repeat", 1, "单测试点重复执行次数")
	cases       = pflag.StringSlice("cases", nil, "指定执行的测试点(数字或名称片段,如 1,02,sample)")
	maxDiffs    = pflag.Int("max-diffs", 10, "WA 最大显示差异行数,负数表示不限制")
	showMissing = pflag.Bool("show-missing", false, "缺少 .out 时显示程序原始输出")
	raw         = pflag.Bool("raw", false, "总是显示程序原始输出")
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "用法: ojtest [flags] <target> [target args...]\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() < 1 {
		pflag.Usage()
		os.Exit(2)
	}
	target := pflag.Arg(0)
	targetArgs := pflag.Args()[1:]

	opts := harness.Options{
		TimeLimit:         time.Duration(*timeLimitMs) * time.Millisecond,
		Strict:            *strict,
		MaxDiffs:          *maxDiffs,
		Repeat:            *repeat,
		Cases:             *cases,
		CaseDir:           *caseDir,
		ShowMissingOutput: *showMissing,
		ShowRawOutput:     *raw,
	}

	// 配置文件提供基准值,显式传入的命令行参数优先
	if *confPath != "" {
		cfg := conf.Load(*confPath)
		if logger, err := logging.NewLogger(cfg); err == nil {
			defer logger.Sync()
		}
		hc := conf.LoadHarnessConfig(cfg)
		if !pflag.CommandLine.Changed("time") {
			opts.TimeLimit = hc.TimeLimit
		}
		if !pflag.CommandLine.Changed("strict") {
			opts.Strict = hc.Strict
		}
		if !pflag.CommandLine.Changed("repeat") {
			opts.Repeat = hc.Repeat
		}
		if !pflag.CommandLine.Changed("max-diffs") {
			opts.MaxDiffs = hc.MaxDiffs
		}
		if !pflag.CommandLine.Changed("show-missing") {
			opts.ShowMissingOutput = hc.ShowMissingOutput
		}
		if !pflag.CommandLine.Changed("raw") {
			opts.ShowRawOutput = hc.ShowRawOutput
		}
		if !pflag.CommandLine.Changed("dir") {
			opts.CaseDir = hc.CaseDir
		}
	}

	if _, err := harness.RunTarget(target, targetArgs, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
