package prepare

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/kuwabara/MUBench/pkg/shared/files"
)

const mainIndexTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Detector Reviews</title>
</head>
<body>
<h1>Detector Reviews</h1>
<ul>
{{range .}}    <li><a href="{{.Link}}">{{.Detector}}</a></li>
{{end}}</ul>
</body>
</html>
`

type mainIndexEntry struct {
	Detector string
	Link     string
}

// GenerateMainIndex writes the cross-detector index at the root of the
// review tree, one link per detector directory that holds a rendered
// per-detector index.
func GenerateMainIndex(reviewsRoot string, logger hclog.Logger) error {
	entries, err := os.ReadDir(reviewsRoot)
	if err != nil {
		return fmt.Errorf("failed to scan reviews root %q: %w", reviewsRoot, err)
	}

	var detectors []mainIndexEntry
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		indexPath := filepath.Join(reviewsRoot, entry.Name(), IndexFile)
		if _, err := os.Stat(indexPath); err != nil {
			continue
		}
		detectors = append(detectors, mainIndexEntry{
			Detector: entry.Name(),
			Link:     entry.Name() + "/" + IndexFile,
		})
	}

	tmpl, err := template.New("main-index").Parse(mainIndexTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse main index template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, detectors); err != nil {
		return fmt.Errorf("failed to render main index: %w", err)
	}

	if err := files.SafeWrite(buf.String(), filepath.Join(reviewsRoot, IndexFile), false); err != nil {
		return err
	}
	logger.Debug("main index regenerated", "path", reviewsRoot, "detectors", len(detectors))
	return nil
}
