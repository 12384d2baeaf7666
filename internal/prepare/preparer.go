// Package prepare reconciles persisted detector runs against the benchmark
// corpus and maintains the review artifact tree. One Preparer pass walks
// every project, version and misuse sequentially, decides per misuse whether
// existing review artifacts can be reused or must be regenerated, and
// records exactly one ledger row per misuse.
package prepare

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/kuwabara/MUBench/internal/corpus"
	"github.com/kuwabara/MUBench/internal/page"
	"github.com/kuwabara/MUBench/internal/review"
	"github.com/kuwabara/MUBench/internal/run"
	"github.com/kuwabara/MUBench/internal/store"
	"github.com/kuwabara/MUBench/pkg/shared/files"
)

// IndexFile is the per-detector ledger document, overwritten at the end of
// every completed pass.
const IndexFile = "index.html"

// ArtifactStore is the review-directory contract the driver decides against.
type ArtifactStore interface {
	ExistsAndReusable(path string, force bool) bool
	HasReviewSite(path string) bool
	LoadExistingReviews(path string) ([]store.ReviewRecord, error)
	Clear(path string) error
	PersistCandidates(candidates []run.Finding, path string) error
}

// PageGenerator renders review documents into the review tree.
type PageGenerator interface {
	Generate(outputPath, detector, checkoutPath, compilesPath string,
		project *corpus.Project, version *corpus.ProjectVersion, misuse *corpus.Misuse, hits []run.Finding) error
	GenerateFinding(outputPath, detector, checkoutPath, compilesPath string,
		version *corpus.ProjectVersion, finding run.Finding) error
}

// Strategy decides what review artifacts one detector run yields: matching
// against known misuses, or a blanket pass over all findings.
type Strategy interface {
	ProcessVersion(p *Preparer, project *corpus.Project, version *corpus.ProjectVersion,
		detectorRun *run.Run, runReview *review.RunReview) error
}

// Options configures one reconciliation pass.
type Options struct {
	Detector      string
	FindingsPath  string
	ReviewPath    string
	CheckoutsPath string
	CompilesPath  string
	Force         bool
}

// Preparer orchestrates one full pass.
type Preparer struct {
	opts     Options
	strategy Strategy
	store    ArtifactStore
	pages    PageGenerator
	logger   hclog.Logger
}

// New creates a Preparer with the default artifact store and page generator.
func New(opts Options, strategy Strategy, logger hclog.Logger) *Preparer {
	return &Preparer{
		opts:     opts,
		strategy: strategy,
		store:    store.New(logger),
		pages:    page.NewGenerator(logger),
		logger:   logger,
	}
}

// Run executes the pass over all projects. Processing is strictly
// sequential; the first filesystem failure aborts the pass, leaving
// previously completed misuse directories intact but the index unwritten.
func (p *Preparer) Run(projects []*corpus.Project) error {
	p.logger.Info("preparing review", "detector", p.opts.Detector)

	ledger := review.NewReview(p.opts.Detector)
	for _, project := range projects {
		projectReview := ledger.StartProjectReview(project.ID)
		for _, version := range project.Versions {
			detectorRun, err := run.Load(p.findingsPath(project, version), p.logger)
			if err != nil {
				return err
			}
			runReview := projectReview.StartRunReview(version.VersionID, detectorRun)

			if err := p.strategy.ProcessVersion(p, project, version, detectorRun, runReview); err != nil {
				return err
			}
		}
	}

	if err := p.writeIndex(ledger); err != nil {
		return err
	}
	return p.regenerateMainIndex()
}

func (p *Preparer) findingsPath(project *corpus.Project, version *corpus.ProjectVersion) string {
	return filepath.Join(p.opts.FindingsPath, project.ID, version.VersionID)
}

func (p *Preparer) checkoutPath(project *corpus.Project, version *corpus.ProjectVersion) string {
	return filepath.Join(p.opts.CheckoutsPath, project.ID, version.VersionID)
}

// writeIndex renders the ledger to the well-known per-detector index path.
// It only runs at the very end of a pass, so an aborted pass leaves no
// freshly written index behind.
func (p *Preparer) writeIndex(ledger *review.Review) error {
	var buf bytes.Buffer
	if err := ledger.RenderHTML(&buf); err != nil {
		return err
	}

	indexPath := filepath.Join(p.opts.ReviewPath, IndexFile)
	if err := files.SafeWrite(buf.String(), indexPath, false); err != nil {
		return fmt.Errorf("failed to write review index: %w", err)
	}
	p.logger.Info("review index written", "path", indexPath)
	return nil
}

// regenerateMainIndex refreshes the cross-detector index when the sibling
// aggregate findings directory exists.
func (p *Preparer) regenerateMainIndex() error {
	mainFindingsDir := filepath.Dir(p.opts.FindingsPath)
	if _, err := os.Stat(mainFindingsDir); os.IsNotExist(err) {
		return nil
	}
	return GenerateMainIndex(filepath.Dir(p.opts.ReviewPath), p.logger)
}
