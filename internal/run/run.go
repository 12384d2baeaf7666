package run

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	yaml "gopkg.in/yaml.v2"
)

// Result is the outcome status of one detector execution.
type Result string

const (
	ResultSuccess Result = "success"
	ResultError   Result = "error"
	ResultTimeout Result = "timeout"
	// ResultNotRun is reported when no persisted output exists for the
	// requested path. That is a recognizable status, never an error.
	ResultNotRun Result = "not run"
)

const (
	resultFile        = "result.yml"
	findingsYAMLFile  = "findings.yml"
	findingsSarifFile = "findings.sarif"
)

// Run is the persisted outcome of one detector execution for a
// (project, version) pair: a status plus the ordered findings.
type Run struct {
	Result   Result
	Runtime  float64
	Message  string
	Findings []Finding
}

// IsSuccess reports whether the detector completed normally.
func (r *Run) IsSuccess() bool {
	return r.Result == ResultSuccess
}

type runState struct {
	Result  string  `yaml:"result"`
	Runtime float64 `yaml:"runtime"`
	Message string  `yaml:"message"`
}

// Load reconstructs the detector run from the persisted output below path.
// It reads everything fresh on each call; callers may invoke it repeatedly
// for the same path and must not rely on any caching. A missing path yields
// a run with ResultNotRun and no findings.
func Load(path string, logger hclog.Logger) (*Run, error) {
	statePath := filepath.Join(path, resultFile)
	if _, err := os.Stat(statePath); os.IsNotExist(err) {
		logger.Debug("no detector run persisted", "path", path)
		return &Run{Result: ResultNotRun}, nil
	}

	var state runState
	if err := loadYAMLFile(statePath, &state); err != nil {
		return nil, fmt.Errorf("failed to load run state from %q: %w", statePath, err)
	}

	run := &Run{Result: Result(state.Result), Runtime: state.Runtime, Message: state.Message}
	if !run.IsSuccess() {
		return run, nil
	}

	findings, err := loadFindings(path, logger)
	if err != nil {
		return nil, err
	}
	run.Findings = findings
	return run, nil
}

// loadFindings reads the findings stream next to the run state. Detectors
// persist either a multi-document findings.yml or a findings.sarif report.
func loadFindings(path string, logger hclog.Logger) ([]Finding, error) {
	yamlPath := filepath.Join(path, findingsYAMLFile)
	if _, err := os.Stat(yamlPath); err == nil {
		return loadYAMLFindings(yamlPath)
	}

	sarifPath := filepath.Join(path, findingsSarifFile)
	if _, err := os.Stat(sarifPath); err == nil {
		return loadSarifFindings(sarifPath, logger)
	}

	logger.Debug("run succeeded but persisted no findings file", "path", path)
	return nil, nil
}

func loadYAMLFindings(path string) ([]Finding, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open findings file %q: %w", path, err)
	}
	defer file.Close()

	var findings []Finding
	decoder := yaml.NewDecoder(file)
	for {
		var finding Finding
		if err := decoder.Decode(&finding); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to parse findings file %q: %w", path, err)
		}
		findings = append(findings, finding)
	}
	return findings, nil
}

func loadYAMLFile(path string, data interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return yaml.NewDecoder(file).Decode(data)
}
