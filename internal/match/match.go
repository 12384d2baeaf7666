// Package match decides which findings of a detector run potentially hit a
// known misuse location. Detectors vary wildly in how precisely they report
// a location (file only, file plus method name, file plus full signature),
// so matching is heuristic: a file-identity filter followed by a
// method-signature filter with a name-only fallback tier.
package match

import (
	"strings"

	"github.com/kuwabara/MUBench/internal/corpus"
	"github.com/kuwabara/MUBench/internal/run"
)

const (
	innerClassMarker = "$"
	classFileExt     = ".class"
	sourceFileExt    = ".java"
	paramListMarker  = "("
)

// FindPotentialHits returns the findings that potentially correspond to the
// misuse location. The result is a subsequence of findings in their original
// order; empty is a valid outcome.
func FindPotentialHits(findings []run.Finding, misuse *corpus.Misuse) []run.Finding {
	candidates := filterByFile(findings, misuse.Location.File)
	return filterByMethod(candidates, misuse.Location.Method)
}

func filterByFile(findings []run.Finding, misuseFile string) []run.Finding {
	var matches []run.Finding
	for _, finding := range findings {
		if matchesFile(finding.File, misuseFile) {
			matches = append(matches, finding)
		}
	}
	return matches
}

// matchesFile normalizes what the detector reported to a source-file
// identity and compares path suffixes in both directions: detectors report
// absolute, relative, and partially qualified paths, so either side may be
// the more qualified one.
func matchesFile(findingFile, misuseFile string) bool {
	// An inner class "Outer$Inner.class" is declared in "Outer.java".
	if idx := strings.Index(findingFile, innerClassMarker); idx >= 0 {
		findingFile = findingFile[:idx] + sourceFileExt
	}
	// A class file "A.class" is compiled from "A.java".
	if strings.HasSuffix(findingFile, classFileExt) {
		findingFile = strings.TrimSuffix(findingFile, classFileExt) + sourceFileExt
	}
	return strings.HasSuffix(findingFile, misuseFile) || strings.HasSuffix(misuseFile, findingFile)
}

func filterByMethod(findings []run.Finding, misuseMethod string) []run.Finding {
	matches := filterBySignature(findings, misuseMethod)
	if len(matches) == 0 {
		// The detector's signature format may disagree with the corpus's
		// even though the method name matches.
		matches = filterByMethodName(findings, misuseMethod)
	}
	return matches
}

// filterBySignature is the primary tier. Findings without a method are never
// filtered here, since the detector's granularity is file-level only.
func filterBySignature(findings []run.Finding, misuseMethod string) []run.Finding {
	var matches []run.Finding
	for _, finding := range findings {
		if !finding.HasMethod() {
			matches = append(matches, finding)
			continue
		}

		method := finding.Method
		// A bare name must not match a prefix of a longer method name.
		if !strings.Contains(method, paramListMarker) {
			method += paramListMarker
		}
		if strings.Contains(misuseMethod, method) {
			matches = append(matches, finding)
		}
	}
	return matches
}

// filterByMethodName is the fallback tier, invoked only when the primary
// tier matched nothing. It compares name-only forms. Findings without a
// method are skipped: they pass the primary tier unconditionally, so when
// this tier runs none can be present.
func filterByMethodName(findings []run.Finding, misuseMethod string) []run.Finding {
	var matches []run.Finding
	for _, finding := range findings {
		if !finding.HasMethod() {
			continue
		}

		name, _, _ := strings.Cut(finding.Method, paramListMarker)
		if strings.Contains(misuseMethod, name+paramListMarker) {
			matches = append(matches, finding)
		}
	}
	return matches
}
