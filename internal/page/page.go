// Package page renders the self-contained per-misuse review documents.
package page

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/kuwabara/MUBench/internal/corpus"
	"github.com/kuwabara/MUBench/internal/git"
	"github.com/kuwabara/MUBench/internal/run"
	"github.com/kuwabara/MUBench/pkg/shared/files"
)

//go:embed templates/review.html
var reviewTemplate string

//go:embed templates/finding.html
var findingTemplate string

// Generator writes review pages into the review tree.
type Generator struct {
	logger hclog.Logger
}

// NewGenerator creates a page generator.
func NewGenerator(logger hclog.Logger) *Generator {
	return &Generator{logger: logger}
}

type reviewPageData struct {
	Detector     string
	Project      *corpus.Project
	Version      *corpus.ProjectVersion
	Misuse       *corpus.Misuse
	Hits         []run.Finding
	Metadata     *git.RepositoryMetadata
	SourceURL    string
	CompilesPath string
	Time         time.Time
}

type findingPageData struct {
	Detector     string
	Version      *corpus.ProjectVersion
	Finding      run.Finding
	Metadata     *git.RepositoryMetadata
	SourceURL    string
	CompilesPath string
	Time         time.Time
}

// Generate writes the review site index for a misuse with its matched
// candidates to outputPath.
func (g *Generator) Generate(outputPath, detector, checkoutPath, compilesPath string,
	project *corpus.Project, version *corpus.ProjectVersion, misuse *corpus.Misuse, hits []run.Finding) error {

	metadata := g.collectMetadata(checkoutPath)
	data := &reviewPageData{
		Detector:     detector,
		Project:      project,
		Version:      version,
		Misuse:       misuse,
		Hits:         hits,
		Metadata:     metadata,
		SourceURL:    git.NewSourceURLBuilder(metadata)(misuse.Location.File),
		CompilesPath: compilesPath,
		Time:         time.Now().UTC(),
	}
	return g.render("review.html", reviewTemplate, outputPath, data)
}

// GenerateFinding writes the simplified single-finding review page used by
// the all-findings mode.
func (g *Generator) GenerateFinding(outputPath, detector, checkoutPath, compilesPath string,
	version *corpus.ProjectVersion, finding run.Finding) error {

	metadata := g.collectMetadata(checkoutPath)
	data := &findingPageData{
		Detector:     detector,
		Version:      version,
		Finding:      finding,
		Metadata:     metadata,
		SourceURL:    git.NewSourceURLBuilder(metadata)(finding.File),
		CompilesPath: compilesPath,
		Time:         time.Now().UTC(),
	}
	return g.render("finding.html", findingTemplate, outputPath, data)
}

// collectMetadata is best effort: a checkout that is missing or not a git
// repository yields empty metadata, never a failed pass.
func (g *Generator) collectMetadata(checkoutPath string) *git.RepositoryMetadata {
	metadata, err := git.CollectRepositoryMetadata(checkoutPath)
	if err != nil {
		g.logger.Debug("can't collect checkout metadata", "path", checkoutPath, "err", err)
	}
	return metadata
}

func (g *Generator) render(name, text, outputPath string, data interface{}) error {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse %s template: %w", name, err)
	}

	if err := files.CreateFolderIfNotExists(filepath.Dir(outputPath)); err != nil {
		return err
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create review page %q: %w", outputPath, err)
	}
	defer file.Close()

	if err := tmpl.Execute(file, data); err != nil {
		return fmt.Errorf("failed to render review page %q: %w", outputPath, err)
	}
	return nil
}
