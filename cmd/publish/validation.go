package publish

import (
	"fmt"
)

// validatePublishArgs validates the arguments provided to the publish command.
func validatePublishArgs(options *RunOptionsPublish) error {
	if options.Detector == "" {
		return fmt.Errorf("the 'detector' flag must be specified")
	}
	if options.ReviewsPath == "" {
		return fmt.Errorf("the 'reviews' flag must be specified")
	}
	if options.URL == "" {
		return fmt.Errorf("a review site URL must be given via the 'url' flag or the configuration")
	}
	return nil
}
