package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kuwabara/MUBench/cmd/prepare"
	"github.com/kuwabara/MUBench/cmd/publish"
	"github.com/kuwabara/MUBench/cmd/version"
	"github.com/kuwabara/MUBench/internal/config"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "mubench [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "MUBench reconciles detector findings against a benchmark of known API misuses.",
		Long: `MUBench prepares review artifacts for automated API-misuse detectors:
	it matches each detector run's findings against the benchmark's documented
	misuse locations and maintains a navigable tree of per-misuse review pages,
	preserving prior human review annotations across reruns.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(prepare.PrepareCmd)
	rootCmd.AddCommand(publish.PublishCmd)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize configuration: %v\n", err)
		os.Exit(1)
	}

	prepare.Init(AppConfig)
	publish.Init(AppConfig)
	version.Init(AppConfig)
}
