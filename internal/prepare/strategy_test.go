package prepare

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuwabara/MUBench/internal/corpus"
)

func allFindingsProjects() []*corpus.Project {
	return []*corpus.Project{
		{
			ID: "acme",
			Versions: []*corpus.ProjectVersion{
				{VersionID: "v1"},
			},
		},
	}
}

func TestAllFindingsStrategy(t *testing.T) {
	tree := newTestTree(t)
	tree.writeRun(t, "acme", "v1",
		"result: success\nruntime: 5\n",
		"file: A.java\nid: 0\n---\nfile: B.java\nid: 1\n")

	preparer := newPreparer(tree, false, AllFindingsStrategy{})
	require.NoError(t, preparer.Run(allFindingsProjects()))

	assert.FileExists(t, filepath.Join(tree.reviewPath, "acme", "v1", "finding-0.html"))
	assert.FileExists(t, filepath.Join(tree.reviewPath, "acme", "v1", "finding-1.html"))

	index := tree.readIndex(t)
	assert.Contains(t, index, "Finding 0")
	assert.Contains(t, index, `<a href="acme/v1/finding-1.html">review</a>`)
}

func TestAllFindingsStrategyFailedRun(t *testing.T) {
	tree := newTestTree(t)
	tree.writeRun(t, "acme", "v1", "result: timeout\n", "")

	preparer := newPreparer(tree, false, AllFindingsStrategy{})
	require.NoError(t, preparer.Run(allFindingsProjects()))

	assert.Contains(t, tree.readIndex(t), "[run: timeout]")
}

func TestAllFindingsStrategyXMLOnlyDetector(t *testing.T) {
	tree := newTestTree(t)
	tree.writeRun(t, "acme", "v1", "result: success\n", "")
	violations := filepath.Join(tree.findingsPath, "acme", "v1", "violations.xml")
	require.NoError(t, os.WriteFile(violations, []byte("<violations/>"), 0644))

	strategy := AllFindingsStrategy{XMLOnlyDetectorPrefixes: []string{"demo"}}
	require.NoError(t, newPreparer(tree, false, strategy).Run(allFindingsProjects()))

	copied := filepath.Join(tree.reviewPath, "acme", "v1", "violations.xml")
	data, err := os.ReadFile(copied)
	require.NoError(t, err)
	assert.Equal(t, "<violations/>", string(data))

	index := tree.readIndex(t)
	assert.Contains(t, index, `<a href="acme/v1/violations.xml">download violations.xml</a>`)
}
