// Package store manages the on-disk per-misuse review directory: whether it
// can be reused, what prior reviewer annotations it holds, and the snapshot
// of matched candidates written next to the review page.
package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	yaml "gopkg.in/yaml.v2"

	"github.com/kuwabara/MUBench/internal/run"
	"github.com/kuwabara/MUBench/pkg/shared/files"
)

const (
	// ReviewSiteFile is the index document of a prepared review directory.
	ReviewSiteFile = "review.html"
	// CandidatesFile is the multi-document snapshot of matched findings.
	CandidatesFile = "potentialhits.yml"

	reviewFilePrefix = "review"
	reviewFileSuffix = ".yml"
)

// ReviewRecord is the parsed content of one reviewer annotation file.
// Reviewer is what the ledger surfaces; everything else the reviewing tool
// wrote is kept in Extra untouched.
type ReviewRecord struct {
	Reviewer string
	Extra    map[string]interface{}
}

func (r *ReviewRecord) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw map[string]interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	if reviewer, ok := raw["reviewer"].(string); ok {
		r.Reviewer = reviewer
		delete(raw, "reviewer")
	}
	if len(raw) > 0 {
		r.Extra = raw
	}
	return nil
}

// Store mediates a review directory tree.
type Store struct {
	logger hclog.Logger
}

// New creates a review artifact store.
func New(logger hclog.Logger) *Store {
	return &Store{logger: logger}
}

// ExistsAndReusable reports whether the review directory at path can be
// reused as-is. Forced regeneration always makes it non-reusable.
func (s *Store) ExistsAndReusable(path string, force bool) bool {
	if force {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// HasReviewSite reports whether the directory holds a review index document.
func (s *Store) HasReviewSite(path string) bool {
	_, err := os.Stat(filepath.Join(path, ReviewSiteFile))
	return err == nil
}

// LoadExistingReviews scans the directory (non-recursive) for reviewer
// annotation files matching review*.yml and parses each one. A missing
// directory or no matching files yields an empty result. A file that fails
// to parse is an error: silently ignoring it would hide human review work.
func (s *Store) LoadExistingReviews(path string) ([]ReviewRecord, error) {
	entries, err := os.ReadDir(path)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to scan review directory %q: %w", path, err)
	}

	var records []ReviewRecord
	for _, entry := range entries {
		if entry.IsDir() || !isReviewFile(entry.Name()) {
			continue
		}

		filePath := filepath.Join(path, entry.Name())
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read review file %q: %w", filePath, err)
		}

		var record ReviewRecord
		if err := yaml.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("malformed review file %q: %w", filePath, err)
		}
		records = append(records, record)
		s.logger.Debug("loaded existing review", "file", filePath, "reviewer", record.Reviewer)
	}
	return records, nil
}

func isReviewFile(name string) bool {
	return strings.HasPrefix(name, reviewFilePrefix) && strings.HasSuffix(name, reviewFileSuffix)
}

// Clear recursively deletes the directory tree rooted at path. Clearing a
// path that does not exist is a no-op.
func (s *Store) Clear(path string) error {
	return files.RemoveTree(path)
}

// PersistCandidates writes the matched findings as a multi-document YAML
// snapshot inside the directory, overwriting any prior content.
func (s *Store) PersistCandidates(candidates []run.Finding, path string) error {
	var buf bytes.Buffer
	for i, candidate := range candidates {
		if i > 0 {
			buf.WriteString("---\n")
		}
		doc, err := yaml.Marshal(candidate)
		if err != nil {
			return fmt.Errorf("failed to serialize candidate %d: %w", i, err)
		}
		buf.Write(doc)
	}
	return files.SafeWrite(buf.String(), filepath.Join(path, CandidatesFile), false)
}

// ReviewerNames extracts the non-empty reviewer names in record order.
func ReviewerNames(records []ReviewRecord) []string {
	var reviewers []string
	for _, record := range records {
		if record.Reviewer != "" {
			reviewers = append(reviewers, record.Reviewer)
		}
	}
	return reviewers
}
