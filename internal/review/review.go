// Package review accumulates one structured outcome row per processed misuse
// and renders the per-detector index document at the end of a pass.
package review

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kuwabara/MUBench/internal/run"
)

// Outcome is the result text of one finding row. Link, when set, turns the
// text into a hyperlink in the rendered document.
type Outcome struct {
	Text string
	Link string
}

// ReviewLink is the outcome for a misuse with a prepared review site.
func ReviewLink(site string) Outcome {
	return Outcome{Text: "review", Link: site}
}

// NoHits is the outcome for a misuse without potential hits.
func NoHits() Outcome {
	return Outcome{Text: "no potential hits"}
}

// RunFailure is the outcome for a misuse whose detector run did not succeed.
func RunFailure(result run.Result) Outcome {
	return Outcome{Text: fmt.Sprintf("run: %s", result)}
}

// Download is the outcome for detectors whose findings are only available
// as a raw artifact.
func Download(name, url string) Outcome {
	return Outcome{Text: fmt.Sprintf("download %s", name), Link: url}
}

// FindingReview is one outcome row.
type FindingReview struct {
	Name      string
	Result    Outcome
	Reviewers []string
}

// ReviewedBy renders the reviewer attribution for the row.
func (f *FindingReview) ReviewedBy() string {
	if len(f.Reviewers) == 0 {
		return "none"
	}
	return "reviewed by " + strings.Join(f.Reviewers, ", ")
}

// RunReview groups the finding rows of one detector run (one version).
type RunReview struct {
	VersionID      string
	Run            *run.Run
	FindingReviews []*FindingReview
}

// AppendFindingReview appends one outcome row. Rows are append-only and
// keep their insertion order.
func (r *RunReview) AppendFindingReview(name string, result Outcome, reviewers []string) {
	r.FindingReviews = append(r.FindingReviews, &FindingReview{
		Name:      name,
		Result:    result,
		Reviewers: reviewers,
	})
}

// ProjectReview groups the run reviews of one project.
type ProjectReview struct {
	ProjectID  string
	RunReviews []*RunReview
}

// StartRunReview opens a run scope and returns its handle. Rows are
// appended through the handle, there is no implicit current run.
func (p *ProjectReview) StartRunReview(versionID string, detectorRun *run.Run) *RunReview {
	runReview := &RunReview{VersionID: versionID, Run: detectorRun}
	p.RunReviews = append(p.RunReviews, runReview)
	return runReview
}

// Review is the root of the ledger for one reconciliation pass.
type Review struct {
	Detector       string
	PassID         string
	StartedAt      time.Time
	ProjectReviews []*ProjectReview
}

// NewReview starts an empty ledger for the given detector.
func NewReview(detector string) *Review {
	return &Review{
		Detector:  detector,
		PassID:    uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
}

// StartProjectReview opens a project scope and returns its handle.
func (r *Review) StartProjectReview(projectID string) *ProjectReview {
	projectReview := &ProjectReview{ProjectID: projectID}
	r.ProjectReviews = append(r.ProjectReviews, projectReview)
	return projectReview
}
