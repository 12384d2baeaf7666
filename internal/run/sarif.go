package run

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"github.com/owenrumney/go-sarif/v2/sarif"
)

// loadSarifFindings maps a SARIF report to the finding model: file from the
// first physical location, method from its fully qualified logical location
// when the detector reports one, id from the result's position in the report.
func loadSarifFindings(path string, logger hclog.Logger) ([]Finding, error) {
	report, err := readSarifReport(path)
	if err != nil {
		return nil, err
	}

	var findings []Finding
	index := 0
	for _, sarifRun := range report.Runs {
		for _, result := range sarifRun.Results {
			finding, ok := mapSarifResult(result, index)
			if !ok {
				logger.Debug("skipping sarif result without a file location", "path", path, "index", index)
				index++
				continue
			}
			findings = append(findings, finding)
			index++
		}
	}
	return findings, nil
}

func readSarifReport(path string) (*sarif.Report, error) {
	jsonFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sarif report %q: %w", path, err)
	}
	defer jsonFile.Close()

	var report sarif.Report
	if err := json.NewDecoder(jsonFile).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to parse sarif report %q: %w", path, err)
	}
	return &report, nil
}

func mapSarifResult(result *sarif.Result, index int) (Finding, bool) {
	finding := Finding{ID: strconv.Itoa(index)}

	for _, location := range result.Locations {
		if location.PhysicalLocation == nil || location.PhysicalLocation.ArtifactLocation == nil {
			continue
		}
		if uri := location.PhysicalLocation.ArtifactLocation.URI; uri != nil && *uri != "" {
			finding.File = *uri
		}
		for _, logical := range location.LogicalLocations {
			if logical.FullyQualifiedName != nil && *logical.FullyQualifiedName != "" {
				finding.Method = *logical.FullyQualifiedName
				break
			}
		}
		if finding.File != "" {
			break
		}
	}
	if finding.File == "" {
		return Finding{}, false
	}

	extra := map[string]interface{}{}
	if result.RuleID != nil && *result.RuleID != "" {
		extra["rule"] = *result.RuleID
	}
	if result.Message.Text != nil && *result.Message.Text != "" {
		extra["message"] = *result.Message.Text
	}
	if len(extra) > 0 {
		finding.Extra = extra
	}
	return finding, true
}
