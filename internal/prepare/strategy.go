package prepare

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/kuwabara/MUBench/internal/corpus"
	"github.com/kuwabara/MUBench/internal/match"
	"github.com/kuwabara/MUBench/internal/review"
	"github.com/kuwabara/MUBench/internal/run"
	"github.com/kuwabara/MUBench/internal/store"
	"github.com/kuwabara/MUBench/pkg/shared/files"
)

// violationsFile is the raw artifact some detectors persist instead of a
// findings stream.
const violationsFile = "violations.xml"

// KnownMisuseStrategy reconciles the run against every known misuse of the
// version, one review directory per misuse.
type KnownMisuseStrategy struct{}

func (KnownMisuseStrategy) ProcessVersion(p *Preparer, project *corpus.Project,
	version *corpus.ProjectVersion, _ *run.Run, runReview *review.RunReview) error {

	for _, misuse := range version.Misuses {
		if err := processMisuse(p, project, version, misuse, runReview); err != nil {
			return err
		}
	}
	return nil
}

// processMisuse applies the disposition policy for one misuse. The detector
// run is reconstructed from its persisted output on every call; the
// accessor makes that cheap and idempotent.
func processMisuse(p *Preparer, project *corpus.Project, version *corpus.ProjectVersion,
	misuse *corpus.Misuse, runReview *review.RunReview) error {

	detectorRun, err := run.Load(p.findingsPath(project, version), p.logger)
	if err != nil {
		return err
	}

	if !detectorRun.IsSuccess() {
		p.logger.Info("skipping misuse: no result", "misuse", misuse.ID, "version", version.VersionID)
		runReview.AppendFindingReview(misuse.ID, review.RunFailure(detectorRun.Result), nil)
		return nil
	}

	reviewDir := filepath.Join(project.ID, version.VersionID, misuse.ID)
	reviewSite := path.Join(filepath.ToSlash(reviewDir), store.ReviewSiteFile)
	reviewPath := filepath.Join(p.opts.ReviewPath, reviewDir)

	if p.store.ExistsAndReusable(reviewPath, p.opts.Force) {
		if p.store.HasReviewSite(reviewPath) {
			records, err := p.store.LoadExistingReviews(reviewPath)
			if err != nil {
				return err
			}
			runReview.AppendFindingReview(misuse.ID, review.ReviewLink(reviewSite), store.ReviewerNames(records))
		} else {
			runReview.AppendFindingReview(misuse.ID, review.NoHits(), nil)
		}
		p.logger.Info("misuse is already prepared", "misuse", misuse.ID, "version", version.VersionID)
		return nil
	}

	p.logger.Debug("checking hit", "misuse", misuse.ID, "version", version.VersionID)
	potentialHits := match.FindPotentialHits(detectorRun.Findings, misuse)
	p.logger.Info("matched potential hits", "misuse", misuse.ID, "hits", len(potentialHits))

	if err := p.store.Clear(reviewPath); err != nil {
		return err
	}

	if len(potentialHits) > 0 {
		sitePath := filepath.Join(reviewPath, store.ReviewSiteFile)
		err := p.pages.Generate(sitePath, p.opts.Detector, p.checkoutPath(project, version),
			p.opts.CompilesPath, project, version, misuse, potentialHits)
		if err != nil {
			return err
		}
		if err := p.store.PersistCandidates(potentialHits, reviewPath); err != nil {
			return err
		}
		// regeneration intentionally discards stale reviewer attribution
		runReview.AppendFindingReview(misuse.ID, review.ReviewLink(reviewSite), nil)
	} else {
		if err := files.CreateFolderIfNotExists(reviewPath); err != nil {
			return err
		}
		runReview.AppendFindingReview(misuse.ID, review.NoHits(), nil)
	}
	return nil
}

// AllFindingsStrategy prepares a review page for every finding of the run,
// regardless of the known misuses. Detectors listed as XML-only do not
// persist a findings stream; their raw violations artifact is copied into
// the review tree for download instead.
type AllFindingsStrategy struct {
	XMLOnlyDetectorPrefixes []string
}

func (s AllFindingsStrategy) ProcessVersion(p *Preparer, project *corpus.Project,
	version *corpus.ProjectVersion, detectorRun *run.Run, runReview *review.RunReview) error {

	if s.isXMLOnly(p.opts.Detector) {
		return s.copyViolations(p, project, version, runReview)
	}

	if !detectorRun.IsSuccess() {
		runReview.AppendFindingReview("all findings", review.RunFailure(detectorRun.Result), nil)
		return nil
	}

	for _, finding := range detectorRun.Findings {
		url := path.Join(project.ID, version.VersionID, fmt.Sprintf("finding-%s.html", finding.ID))
		outputPath := filepath.Join(p.opts.ReviewPath, project.ID, version.VersionID,
			fmt.Sprintf("finding-%s.html", finding.ID))

		err := p.pages.GenerateFinding(outputPath, p.opts.Detector,
			p.checkoutPath(project, version), p.opts.CompilesPath, version, finding)
		if err != nil {
			return err
		}
		runReview.AppendFindingReview(fmt.Sprintf("Finding %s", finding.ID), review.ReviewLink(url), nil)
	}
	return nil
}

func (s AllFindingsStrategy) isXMLOnly(detector string) bool {
	for _, prefix := range s.XMLOnlyDetectorPrefixes {
		if strings.HasPrefix(detector, prefix) {
			return true
		}
	}
	return false
}

func (s AllFindingsStrategy) copyViolations(p *Preparer, project *corpus.Project,
	version *corpus.ProjectVersion, runReview *review.RunReview) error {

	url := path.Join(project.ID, version.VersionID, violationsFile)
	src := filepath.Join(p.opts.FindingsPath, project.ID, version.VersionID, violationsFile)
	dest := filepath.Join(p.opts.ReviewPath, project.ID, version.VersionID, violationsFile)

	if err := files.CopyFile(src, dest); err != nil {
		return err
	}
	runReview.AppendFindingReview("all findings", review.Download(violationsFile, url), nil)
	return nil
}
