package run

import (
	"fmt"
	"sort"

	yaml "gopkg.in/yaml.v2"
)

// Finding is one location a detector reported. File is always present;
// Method and ID depend on the detector's reporting granularity. Every other
// key the detector emitted is kept verbatim in Extra so it survives into the
// candidates snapshot and the review page.
type Finding struct {
	File   string
	Method string
	ID     string
	Extra  map[string]interface{}
}

// HasMethod reports whether the detector provided a method for this finding.
// Detectors with file-level granularity leave it empty.
func (f *Finding) HasMethod() bool {
	return f.Method != ""
}

// UnmarshalYAML validates the finding at the boundary: the file key is
// required, method and id are optional, everything else lands in Extra.
func (f *Finding) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw map[string]interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	file, ok := raw["file"].(string)
	if !ok || file == "" {
		return fmt.Errorf("finding has no file: %v", raw)
	}
	f.File = file
	delete(raw, "file")

	if method, ok := raw["method"].(string); ok {
		f.Method = method
		delete(raw, "method")
	}
	if id, ok := raw["id"]; ok {
		f.ID = fmt.Sprint(id)
		delete(raw, "id")
	}

	if len(raw) > 0 {
		f.Extra = raw
	}
	return nil
}

// MarshalYAML writes the explicit fields first, then the extras in sorted
// key order, so snapshots diff cleanly between runs.
func (f Finding) MarshalYAML() (interface{}, error) {
	doc := yaml.MapSlice{{Key: "file", Value: f.File}}
	if f.Method != "" {
		doc = append(doc, yaml.MapItem{Key: "method", Value: f.Method})
	}
	if f.ID != "" {
		doc = append(doc, yaml.MapItem{Key: "id", Value: f.ID})
	}

	keys := make([]string, 0, len(f.Extra))
	for key := range f.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		doc = append(doc, yaml.MapItem{Key: key, Value: f.Extra[key]})
	}
	return doc, nil
}
