package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/funvibe/tyfold/internal/config"
	"github.com/funvibe/tyfold/internal/pipeline"
	"github.com/funvibe/tyfold/internal/tyexpr"
	"github.com/funvibe/tyfold/internal/utils"
)

// --- Global Command Variables ---
var (
	verbose   bool
	colorMode string
	params    []string
	lifetimes []string
	consts    []string

	logger *slog.Logger

	rootCmd = &cobra.Command{
		Use:           "tyfold",
		Short:         "Inspect, substitute and resolve type terms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
	}

	runCmd = &cobra.Command{
		Use:   "run [fixture or directory...]",
		Short: "Run the queries of fixture files and report mismatches",
		Long: `Runs every query of the given fixtures. Directories are searched for
*.yaml and *.yml files. Without arguments the nearest tyfold.yaml is used.`,
		RunE: runFixtures,
	}

	statsCmd = &cobra.Command{
		Use:   "stats [fixture or directory...]",
		Short: "Run fixtures and print term sizes and inference counters",
		RunE:  runStats,
	}

	flagsCmd = &cobra.Command{
		Use:   "flags <term>",
		Short: "Print the flags of a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ty, err := tyexpr.ParseTy(args[0], flagEnv())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", ty, ty.Flags())
			return nil
		},
	}

	dumpCmd = &cobra.Command{
		Use:   "dump <term>",
		Short: "Print the structure of a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ty, err := tyexpr.ParseTy(args[0], flagEnv())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%# v\n", pretty.Formatter(ty))
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", config.ColorAuto, "colour output: auto, always or never")

	for _, cmd := range []*cobra.Command{flagsCmd, dumpCmd} {
		cmd.Flags().StringSliceVarP(&params, "params", "p", nil, "declared type parameters")
		cmd.Flags().StringSliceVarP(&lifetimes, "lifetimes", "l", nil, "declared lifetimes, without the quote")
		cmd.Flags().StringSliceVarP(&consts, "consts", "c", nil, "declared const parameters")
	}

	rootCmd.AddCommand(runCmd, statsCmd, flagsCmd, dumpCmd)
}

func flagEnv() *tyexpr.Env {
	return tyexpr.NewEnv().DeclareParams(params...).DeclareLifetimes(lifetimes...).DeclareConsts(consts...)
}

// fixturePaths expands the arguments, falling back to the nearest fixture
// above the working directory.
func fixturePaths(args []string) ([]string, error) {
	if len(args) == 0 {
		found, err := config.FindConfig(".")
		if err != nil {
			return nil, err
		}
		if found == "" {
			return nil, fmt.Errorf("no fixture given and no %s found", config.ConfigFileNames[0])
		}
		args = []string{found}
	}

	var files []string
	for _, arg := range args {
		expanded, err := utils.FixtureFiles(arg)
		if err != nil {
			return nil, err
		}
		files = append(files, expanded...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no fixtures found in %v", args)
	}
	return files, nil
}

func runFile(path string) *pipeline.PipelineContext {
	return pipeline.NewFixturePipeline().Run(&pipeline.PipelineContext{
		FilePath: path,
		Logger:   logger.With("fixture", utils.FixtureName(path)),
	})
}

func runFixtures(cmd *cobra.Command, args []string) error {
	files, err := fixturePaths(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	start := time.Now()
	failed, total := 0, 0
	for _, path := range files {
		ctx := runFile(path)
		p := newPalette(colorMode, ctx.Config, out)
		failed += report(out, p, path, ctx)
		total += len(ctx.Results)
		if len(ctx.Errors) > 0 {
			failed++
		}
	}

	fmt.Fprintf(out, "\n%d queries, %d failed (%s)\n", total, failed, time.Since(start).Round(time.Microsecond))
	if failed > 0 {
		return fmt.Errorf("%d failures", failed)
	}
	return nil
}
