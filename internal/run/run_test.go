package run

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	yaml "gopkg.in/yaml.v2"
)

func writeRunFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
}

func TestLoadMissingPath(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "does-not-exist"), hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("Load returned error for missing path: %v", err)
	}
	if r.Result != ResultNotRun {
		t.Errorf("expected %q, got %q", ResultNotRun, r.Result)
	}
	if r.IsSuccess() {
		t.Error("a missing run must not be successful")
	}
	if len(r.Findings) != 0 {
		t.Errorf("expected no findings, got %d", len(r.Findings))
	}
}

func TestLoadFailedRunSkipsFindings(t *testing.T) {
	dir := t.TempDir()
	writeRunFile(t, dir, "result.yml", "result: timeout\nruntime: 3600\nmessage: detector timed out\n")
	writeRunFile(t, dir, "findings.yml", "file: A.java\n")

	r, err := Load(dir, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if r.Result != ResultTimeout {
		t.Errorf("expected timeout result, got %q", r.Result)
	}
	if len(r.Findings) != 0 {
		t.Error("findings must not be loaded for unsuccessful runs")
	}
}

func TestLoadSuccessfulRun(t *testing.T) {
	dir := t.TempDir()
	writeRunFile(t, dir, "result.yml", "result: success\nruntime: 42.5\n")
	writeRunFile(t, dir, "findings.yml",
		"file: pkg/A.java\nmethod: foo(int)\nid: 0\nrank: 7\n---\nfile: pkg/B.java\n")

	r, err := Load(dir, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !r.IsSuccess() {
		t.Fatalf("expected success, got %q", r.Result)
	}
	if r.Runtime != 42.5 {
		t.Errorf("expected runtime 42.5, got %v", r.Runtime)
	}
	if len(r.Findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(r.Findings))
	}

	first := r.Findings[0]
	if first.File != "pkg/A.java" || first.Method != "foo(int)" || first.ID != "0" {
		t.Errorf("unexpected first finding: %+v", first)
	}
	if first.Extra["rank"] != 7 {
		t.Errorf("expected detector-specific key to survive, got: %+v", first.Extra)
	}

	second := r.Findings[1]
	if second.HasMethod() {
		t.Error("second finding must have no method")
	}
}

func TestLoadRepeatedReconstruction(t *testing.T) {
	dir := t.TempDir()
	writeRunFile(t, dir, "result.yml", "result: success\nruntime: 1\n")
	writeRunFile(t, dir, "findings.yml", "file: A.java\n")

	first, err := Load(dir, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	// a second load observes updated state, nothing is cached
	writeRunFile(t, dir, "findings.yml", "file: A.java\n---\nfile: B.java\n")
	second, err := Load(dir, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(first.Findings) != 1 || len(second.Findings) != 2 {
		t.Errorf("expected 1 then 2 findings, got %d then %d",
			len(first.Findings), len(second.Findings))
	}
}

func TestLoadRejectsFindingWithoutFile(t *testing.T) {
	dir := t.TempDir()
	writeRunFile(t, dir, "result.yml", "result: success\n")
	writeRunFile(t, dir, "findings.yml", "method: foo()\n")

	if _, err := Load(dir, hclog.NewNullLogger()); err == nil {
		t.Error("expected error for a finding without a file")
	}
}

func TestLoadSarifFindings(t *testing.T) {
	dir := t.TempDir()
	writeRunFile(t, dir, "result.yml", "result: success\nruntime: 10\n")
	writeRunFile(t, dir, "findings.sarif", `{
  "version": "2.1.0",
  "runs": [
    {
      "tool": {"driver": {"name": "demo"}},
      "results": [
        {
          "ruleId": "missing-close",
          "message": {"text": "stream is never closed"},
          "locations": [
            {
              "physicalLocation": {"artifactLocation": {"uri": "pkg/A.java"}},
              "logicalLocations": [{"fullyQualifiedName": "foo(int)"}]
            }
          ]
        },
        {
          "message": {"text": "no location"},
          "locations": []
        }
      ]
    }
  ]
}`)

	r, err := Load(dir, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(r.Findings) != 1 {
		t.Fatalf("expected 1 mapped finding, got %d", len(r.Findings))
	}

	finding := r.Findings[0]
	if finding.File != "pkg/A.java" || finding.Method != "foo(int)" || finding.ID != "0" {
		t.Errorf("unexpected mapped finding: %+v", finding)
	}
	if finding.Extra["rule"] != "missing-close" {
		t.Errorf("expected rule id in extras, got: %+v", finding.Extra)
	}
}

func TestFindingMarshalOrder(t *testing.T) {
	finding := Finding{
		File:   "A.java",
		Method: "foo(int)",
		ID:     "3",
		Extra:  map[string]interface{}{"rank": 1, "api": "java.io.Closeable"},
	}

	data, err := yaml.Marshal(finding)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	expected := "file: A.java\nmethod: foo(int)\nid: \"3\"\napi: java.io.Closeable\nrank: 1\n"
	if string(data) != expected {
		t.Errorf("unexpected document:\n%s\nwant:\n%s", string(data), expected)
	}
}
