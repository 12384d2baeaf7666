package publish

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	"github.com/kuwabara/MUBench/internal/config"
	"github.com/kuwabara/MUBench/internal/logger"
	"github.com/kuwabara/MUBench/internal/prepare"
	"github.com/kuwabara/MUBench/pkg/shared/httpclient"
)

// RunOptionsPublish holds the arguments for the publish command.
type RunOptionsPublish struct {
	URL         string
	Detector    string
	ReviewsPath string
}

var (
	AppConfig           *config.Config
	publishOptions      RunOptionsPublish
	examplePublishUsage = `  # Upload the prepared review index of a detector to the review site
  mubench publish --detector mudetect --reviews reviews/mudetect --url https://reviews.example.com`
)

// PublishCmd represents the publish command.
var PublishCmd = &cobra.Command{
	Use:                   "publish --detector NAME --reviews PATH [--url URL]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               examplePublishUsage,
	Short:                 "Upload a prepared review index to the review site",
	RunE:                  runPublishCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runPublishCommand executes the publish command.
func runPublishCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-publish")

	if publishOptions.URL == "" {
		publishOptions.URL = AppConfig.Review.SiteURL
	}
	if err := validatePublishArgs(&publishOptions); err != nil {
		logger.Error("invalid publish arguments", "error", err)
		return err
	}

	client := httpclient.InitializeRestyClient(logger, AppConfig)
	if err := uploadIndex(client, &publishOptions); err != nil {
		return err
	}

	logger.Info("review index published", "detector", publishOptions.Detector, "url", publishOptions.URL)
	return nil
}

// uploadIndex posts the rendered review index to the review site. A token in
// MUBENCH_REVIEW_TOKEN is forwarded as the Authorization header. Any non-2xx
// response fails the upload.
func uploadIndex(client *resty.Client, opts *RunOptionsPublish) error {
	indexPath := filepath.Join(opts.ReviewsPath, prepare.IndexFile)
	document, err := os.ReadFile(indexPath)
	if err != nil {
		return fmt.Errorf("failed to read review index %q: %w", indexPath, err)
	}

	request := client.R().
		SetHeader("Content-Type", "text/html").
		SetBody(document)
	if token := os.Getenv("MUBENCH_REVIEW_TOKEN"); token != "" {
		request.SetHeader("Authorization", fmt.Sprintf("Token %s", token))
	}

	uploadURL := fmt.Sprintf("%s/api/reviews/%s", opts.URL, opts.Detector)
	resp, err := request.Post(uploadURL)
	if err != nil {
		return fmt.Errorf("failed to upload review index: %w", err)
	}
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("review site rejected the upload: %s", resp.Status())
	}
	return nil
}

func init() {
	PublishCmd.Flags().StringVarP(&publishOptions.Detector, "detector", "d", "", "name of the detector whose review index is uploaded")
	PublishCmd.Flags().StringVar(&publishOptions.ReviewsPath, "reviews", "", "path to the detector's review tree")
	PublishCmd.Flags().StringVarP(&publishOptions.URL, "url", "u", "", "review site base URL (defaults to review.site_url from the config)")
}
