package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/robovac/internal/algo"
	"github.com/elektrokombinacija/robovac/internal/batch"
	"github.com/elektrokombinacija/robovac/internal/config"
	"github.com/elektrokombinacija/robovac/internal/logging"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate every algorithm on every house",
	Long: `Runs each selected algorithm on each .house file of --house-path and
writes summary.csv plus the outputs/, logs/ and errors/ directories to --out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		housePath, _ := flags.GetString("house-path")
		algos, _ := flags.GetStringSlice("algo")
		numThreads, _ := flags.GetInt("num-threads")
		summaryOnly, _ := flags.GetBool("summary-only")
		writeLog, _ := flags.GetBool("log")
		configPath, _ := flags.GetString("config")
		outDir, _ := flags.GetString("out")
		metricsFile, _ := flags.GetString("metrics-file")
		verbose, _ := flags.GetBool("verbose")

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if !flags.Changed("num-threads") || numThreads <= 0 {
			numThreads = cfg.Runner.NumThreads
		}

		logger := logging.New(logging.Level(verbose), os.Stderr)
		var metrics *batch.Metrics
		if metricsFile != "" {
			metrics = batch.NewMetrics()
		}

		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}

		runner := batch.NewRunner(algo.DefaultRegistry(), batch.Options{
			HouseDir:           housePath,
			Algorithms:         algos,
			NumThreads:         numThreads,
			SummaryOnly:        summaryOnly,
			WriteLog:           writeLog,
			OutDir:             outDir,
			TimeoutCoefficient: cfg.Simulator.TimeoutCoefficient,
			AlgorithmOptions:   cfg.AlgorithmOptions,
			Logger:             logger,
			Metrics:            metrics,
		})
		sum, err := runner.Run(cmd.Context())
		if sum == nil {
			return err
		}

		summaryPath := filepath.Join(outDir, "summary.csv")
		if werr := sum.WriteFile(summaryPath); werr != nil {
			return werr
		}
		if metrics != nil {
			if werr := metrics.WriteFile(metricsFile); werr != nil {
				return fmt.Errorf("writing metrics: %w", werr)
			}
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d algorithms x %d houses, summary written to %s\n",
			len(sum.Algorithms), len(sum.Houses), summaryPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("house-path", ".", "Directory containing .house files")
	runCmd.Flags().StringSlice("algo", nil, "Algorithm to run, repeatable (default all registered)")
	runCmd.Flags().Int("num-threads", config.DefaultNumThreads, "Maximum concurrent simulations")
	runCmd.Flags().Bool("summary-only", false, "Only write summary.csv, skip per-run output files")
	runCmd.Flags().Bool("log", false, "Write a per-step log for every run")
	runCmd.Flags().String("config", "", "YAML config file")
	runCmd.Flags().String("out", ".", "Directory for summary.csv, outputs, logs and errors")
	runCmd.Flags().String("metrics-file", "", "Write Prometheus metrics in text format to this file")
}
