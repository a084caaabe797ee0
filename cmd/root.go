package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jobmatch-sim/jobmatch-sim/sim"
	"github.com/jobmatch-sim/jobmatch-sim/sim/output"
)

var (
	seed          int64   // Seed for every random draw
	logLevel      string  // Log verbosity level
	configPath    string  // Optional YAML config file
	numSeekers    int     // Number of synthetic job seekers
	numJobs       int     // Number of synthetic job listings
	numRuns       int     // Number of repeated runs after the baseline
	treatmentProb float64 // Probability a seeker is treated
	outputDir     string  // Directory for generated data
	summaryJSON   bool    // Also write the JSON summary
	quiet         bool    // Skip printing result tables
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "jobmatch-sim",
	Short: "Monte Carlo simulator for job-recommendation interventions",
}

// runCmd executes the simulation using parameters from the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the job-matching simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := loadConfig(configPath)
		if err != nil {
			logrus.Fatalf("Failed to load config: %v", err)
		}
		applyFlagOverrides(cmd, &cfg)

		logrus.Infof("Starting simulation: seed=%d, seekers=%d, jobs=%d, skills=%d, p(treated)=%.2f, runs=%d",
			seed, cfg.NumSeekers, cfg.NumJobs, len(cfg.Skills), cfg.TreatmentProb, cfg.NumRuns)
		startTime := time.Now()

		s, err := sim.NewSimulator(cfg, sim.NewSimulationKey(seed))
		if err != nil {
			logrus.Fatalf("Invalid simulation setup: %v", err)
		}

		baseline, err := s.Baseline()
		if err != nil {
			logrus.Fatalf("Baseline run failed: %v", err)
		}
		outcomesPath := filepath.Join(outputDir, output.OutcomesFileName)
		if err := output.WriteOutcomesParquet(outcomesPath, cfg.Skills, baseline.Outcomes); err != nil {
			logrus.Fatalf("Failed to write outcomes: %v", err)
		}
		logrus.Infof("Baseline outcomes written to %s", outcomesPath)

		runs, err := s.Run()
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		results := &sim.Results{Baseline: baseline, Runs: runs}

		runsPath := filepath.Join(outputDir, output.RunAggregatesFile)
		if err := output.WriteRunsParquet(runsPath, runs); err != nil {
			logrus.Fatalf("Failed to write run aggregates: %v", err)
		}
		if summaryJSON {
			summaryPath := filepath.Join(outputDir, output.SummaryJSONFileName)
			if err := output.WriteSummaryJSON(summaryPath, output.NewSummary(seed, cfg, results)); err != nil {
				logrus.Fatalf("Failed to write summary: %v", err)
			}
		}

		if !quiet {
			PrintResults(os.Stdout, results)
		}
		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
// Flags left at their defaults never override a config file value.
func applyFlagOverrides(cmd *cobra.Command, cfg *sim.Config) {
	flags := cmd.Flags()
	if flags.Changed("seekers") {
		cfg.NumSeekers = numSeekers
	}
	if flags.Changed("jobs") {
		cfg.NumJobs = numJobs
	}
	if flags.Changed("runs") {
		cfg.NumRuns = numRuns
	}
	if flags.Changed("treatment-prob") {
		cfg.TreatmentProb = treatmentProb
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := sim.DefaultConfig()

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for all random draws")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config (optional)")

	runCmd.Flags().IntVar(&numSeekers, "seekers", defaults.NumSeekers, "Number of job seekers")
	runCmd.Flags().IntVar(&numJobs, "jobs", defaults.NumJobs, "Number of job listings")
	runCmd.Flags().IntVar(&numRuns, "runs", defaults.NumRuns, "Number of repeated runs")
	runCmd.Flags().Float64Var(&treatmentProb, "treatment-prob", defaults.TreatmentProb, "Probability a seeker is treated")

	runCmd.Flags().StringVar(&outputDir, "output-dir", output.DefaultDir, "Directory for generated data")
	runCmd.Flags().BoolVar(&summaryJSON, "summary-json", false, "Also write summary.json to the output directory")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "Do not print result tables")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
