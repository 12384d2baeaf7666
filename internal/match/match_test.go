package match

import (
	"testing"

	"github.com/kuwabara/MUBench/internal/corpus"
	"github.com/kuwabara/MUBench/internal/run"
)

func misuseAt(file, method string) *corpus.Misuse {
	return &corpus.Misuse{
		ID:       "test.misuse",
		Location: corpus.Location{File: file, Method: method},
	}
}

func files(findings []run.Finding) []string {
	var out []string
	for _, finding := range findings {
		out = append(out, finding.File)
	}
	return out
}

func TestMatchesFile(t *testing.T) {
	tests := []struct {
		name        string
		findingFile string
		misuseFile  string
		expected    bool
	}{
		{
			name:        "inner class file matches outer source file",
			findingFile: "com/Foo$Bar.class",
			misuseFile:  "com/Foo.java",
			expected:    true,
		},
		{
			name:        "class file matches source file",
			findingFile: "com/Foo.class",
			misuseFile:  "com/Foo.java",
			expected:    true,
		},
		{
			name:        "qualified path matches by suffix",
			findingFile: "x/y/Foo.java",
			misuseFile:  "Foo.java",
			expected:    true,
		},
		{
			name:        "different file does not match",
			findingFile: "x/y/Foo.java",
			misuseFile:  "Other.java",
			expected:    false,
		},
		{
			name:        "absolute detector path matches relative misuse path",
			findingFile: "/checkout/src/main/java/pkg/A.java",
			misuseFile:  "pkg/A.java",
			expected:    true,
		},
		{
			name:        "bare file name matches qualified misuse path",
			findingFile: "A.java",
			misuseFile:  "pkg/A.java",
			expected:    true,
		},
		{
			name:        "nested inner class",
			findingFile: "pkg/Outer$Inner$Innermost.class",
			misuseFile:  "pkg/Outer.java",
			expected:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matchesFile(tt.findingFile, tt.misuseFile)
			if result != tt.expected {
				t.Errorf("matchesFile(%q, %q) = %v, want %v",
					tt.findingFile, tt.misuseFile, result, tt.expected)
			}
		})
	}
}

func TestFindPotentialHitsFileFilter(t *testing.T) {
	findings := []run.Finding{
		{File: "pkg/A.java", ID: "0"},
		{File: "pkg/Other.java", ID: "1"},
		{File: "deep/nested/pkg/A.java", ID: "2"},
	}
	misuse := misuseAt("pkg/A.java", "void foo(int)")

	hits := FindPotentialHits(findings, misuse)

	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d: %v", len(hits), files(hits))
	}
	// original relative order is preserved
	if hits[0].ID != "0" || hits[1].ID != "2" {
		t.Errorf("unexpected order: %v", []string{hits[0].ID, hits[1].ID})
	}
}

func TestFindPotentialHitsMethodFilter(t *testing.T) {
	misuse := misuseAt("A.java", "void bar(int)")

	t.Run("finding without method always passes", func(t *testing.T) {
		hits := FindPotentialHits([]run.Finding{{File: "A.java"}}, misuse)
		if len(hits) != 1 {
			t.Errorf("expected 1 hit, got %d", len(hits))
		}
	})

	t.Run("bare name matches full signature", func(t *testing.T) {
		hits := FindPotentialHits([]run.Finding{{File: "A.java", Method: "bar"}}, misuse)
		if len(hits) != 1 {
			t.Errorf("expected 1 hit, got %d", len(hits))
		}
	})

	t.Run("bare name does not match longer name with same prefix", func(t *testing.T) {
		longer := misuseAt("A.java", "void barBaz(int)")
		hits := FindPotentialHits([]run.Finding{{File: "A.java", Method: "bar(int)"}}, longer)
		if len(hits) != 0 {
			t.Errorf("expected no hits, got %d", len(hits))
		}
	})

	t.Run("full signature matches", func(t *testing.T) {
		hits := FindPotentialHits([]run.Finding{{File: "A.java", Method: "bar(int)"}}, misuse)
		if len(hits) != 1 {
			t.Errorf("expected 1 hit, got %d", len(hits))
		}
	})
}

func TestFindPotentialHitsFallbackTier(t *testing.T) {
	misuse := misuseAt("A.java", "void bar(int, java.lang.String)")

	t.Run("fallback recovers name match on signature mismatch", func(t *testing.T) {
		findings := []run.Finding{{File: "A.java", Method: "bar(I;Ljava/lang/String;)"}}
		hits := FindPotentialHits(findings, misuse)
		if len(hits) != 1 {
			t.Errorf("expected fallback to recover the finding, got %d hits", len(hits))
		}
	})

	t.Run("fallback only runs when the primary tier is empty", func(t *testing.T) {
		findings := []run.Finding{
			{File: "A.java", Method: "bar(int, java.lang.String)", ID: "signature"},
			{File: "A.java", Method: "bar(I)", ID: "name-only"},
		}
		hits := FindPotentialHits(findings, misuse)
		if len(hits) != 1 || hits[0].ID != "signature" {
			t.Errorf("expected only the signature match, got %v", hits)
		}
	})

	t.Run("fallback skips findings without a method", func(t *testing.T) {
		// a method-less finding alone passes the primary tier, so the
		// fallback never sees it; mixed with a mismatching method the
		// primary tier is still non-empty because of the method-less one
		findings := []run.Finding{
			{File: "A.java", ID: "file-level"},
			{File: "A.java", Method: "unrelated(int)", ID: "mismatch"},
		}
		hits := FindPotentialHits(findings, misuse)
		if len(hits) != 1 || hits[0].ID != "file-level" {
			t.Errorf("expected only the file-level finding, got %v", hits)
		}
	})
}

func TestFindPotentialHitsEmptyInputs(t *testing.T) {
	misuse := misuseAt("A.java", "void foo()")

	if hits := FindPotentialHits(nil, misuse); len(hits) != 0 {
		t.Errorf("expected no hits for no findings, got %d", len(hits))
	}

	findings := []run.Finding{{File: "B.java", Method: "foo()"}}
	if hits := FindPotentialHits(findings, misuse); len(hits) != 0 {
		t.Errorf("expected no hits for non-matching file, got %d", len(hits))
	}
}
