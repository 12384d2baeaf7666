package prepare

import (
	"github.com/spf13/cobra"

	"github.com/kuwabara/MUBench/internal/config"
	"github.com/kuwabara/MUBench/internal/corpus"
	"github.com/kuwabara/MUBench/internal/logger"
	"github.com/kuwabara/MUBench/internal/prepare"
)

// RunOptionsPrepare holds the arguments for the prepare command.
type RunOptionsPrepare struct {
	Detector      string
	DataPath      string
	FindingsPath  string
	ReviewsPath   string
	CheckoutsPath string
	CompilesPath  string
	Force         bool
	AllFindings   bool
}

var (
	AppConfig           *config.Config
	prepareOptions      RunOptionsPrepare
	examplePrepareUsage = `  # Prepare reviews for the results of a detector
  mubench prepare --detector mudetect --data data --findings findings/mudetect --reviews reviews/mudetect

  # Force regeneration of all review directories, discarding stale annotations
  mubench prepare --detector mudetect --data data --findings findings/mudetect --reviews reviews/mudetect --force

  # Prepare a review page per finding instead of matching known misuses
  mubench prepare --detector mudetect --data data --findings findings/mudetect --reviews reviews/mudetect --all-findings`
)

// PrepareCmd represents the prepare command.
var PrepareCmd = &cobra.Command{
	Use:                   "prepare --detector NAME --data PATH --findings PATH --reviews PATH [--checkouts PATH] [--compiles PATH] [--force] [--all-findings]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               examplePrepareUsage,
	Short:                 "Reconcile detector findings against known misuses and prepare review artifacts",
	RunE:                  runPrepareCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runPrepareCommand executes the prepare command.
func runPrepareCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-prepare")

	if err := validatePrepareArgs(&prepareOptions); err != nil {
		logger.Error("invalid prepare arguments", "error", err)
		return err
	}

	loader := corpus.NewLoader(logger)
	projects, err := loader.Projects(prepareOptions.DataPath)
	if err != nil {
		logger.Error("failed to load benchmark corpus", "error", err)
		return err
	}

	var strategy prepare.Strategy = prepare.KnownMisuseStrategy{}
	if prepareOptions.AllFindings {
		strategy = prepare.AllFindingsStrategy{
			XMLOnlyDetectorPrefixes: AppConfig.Review.DetectorsXMLOnly,
		}
	}

	preparer := prepare.New(prepare.Options{
		Detector:      prepareOptions.Detector,
		FindingsPath:  prepareOptions.FindingsPath,
		ReviewPath:    prepareOptions.ReviewsPath,
		CheckoutsPath: prepareOptions.CheckoutsPath,
		CompilesPath:  prepareOptions.CompilesPath,
		Force:         prepareOptions.Force,
	}, strategy, logger)

	if err := preparer.Run(projects); err != nil {
		logger.Error("review preparation failed", "error", err)
		return err
	}
	return nil
}

func init() {
	PrepareCmd.Flags().StringVarP(&prepareOptions.Detector, "detector", "d", "", "name of the detector whose results are reconciled")
	PrepareCmd.Flags().StringVar(&prepareOptions.DataPath, "data", "data", "path to the benchmark corpus")
	PrepareCmd.Flags().StringVar(&prepareOptions.FindingsPath, "findings", "", "path to the detector's persisted findings")
	PrepareCmd.Flags().StringVar(&prepareOptions.ReviewsPath, "reviews", "", "path to the detector's review tree")
	PrepareCmd.Flags().StringVar(&prepareOptions.CheckoutsPath, "checkouts", "checkouts", "path to the project checkouts")
	PrepareCmd.Flags().StringVar(&prepareOptions.CompilesPath, "compiles", "compiles", "path to the compiled project artifacts")
	PrepareCmd.Flags().BoolVarP(&prepareOptions.Force, "force", "f", false, "regenerate review directories even when they exist")
	PrepareCmd.Flags().BoolVar(&prepareOptions.AllFindings, "all-findings", false, "prepare a review page per finding instead of matching known misuses")
}
