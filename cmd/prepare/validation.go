package prepare

import (
	"fmt"
	"os"
)

// validatePrepareArgs validates the arguments provided to the prepare command.
func validatePrepareArgs(options *RunOptionsPrepare) error {
	if options.Detector == "" {
		return fmt.Errorf("the 'detector' flag must be specified")
	}
	if options.FindingsPath == "" {
		return fmt.Errorf("the 'findings' flag must be specified")
	}
	if options.ReviewsPath == "" {
		return fmt.Errorf("the 'reviews' flag must be specified")
	}

	if _, err := os.Stat(options.DataPath); os.IsNotExist(err) {
		return fmt.Errorf("the corpus path does not exist: %v", options.DataPath)
	}

	return nil
}
