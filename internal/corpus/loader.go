package corpus

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/kuwabara/MUBench/internal/config"
)

const (
	projectFile = "project.yml"
	versionFile = "version.yml"
	misuseFile  = "misuse.yml"
	versionsDir = "versions"
	misusesDir  = "misuses"
)

// Loader reads the benchmark corpus from its on-disk layout:
//
//	<data>/<project-id>/project.yml
//	<data>/<project-id>/misuses/<misuse-id>/misuse.yml
//	<data>/<project-id>/versions/<version-id>/version.yml
type Loader struct {
	logger hclog.Logger
}

// NewLoader creates a corpus loader.
func NewLoader(logger hclog.Logger) *Loader {
	return &Loader{logger: logger}
}

// Projects loads every project below dataPath, in lexical order. Directories
// without a project.yml are skipped with a debug log.
func (l *Loader) Projects(dataPath string) ([]*Project, error) {
	entries, err := os.ReadDir(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus directory %q: %w", dataPath, err)
	}

	var projects []*Project
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		projectPath := filepath.Join(dataPath, entry.Name())
		if _, err := os.Stat(filepath.Join(projectPath, projectFile)); os.IsNotExist(err) {
			l.logger.Debug("skipping directory without project file", "path", projectPath)
			continue
		}

		project, err := l.loadProject(projectPath, entry.Name())
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, nil
}

func (l *Loader) loadProject(projectPath, projectID string) (*Project, error) {
	project := &Project{ID: projectID, misuses: map[string]*Misuse{}}
	if err := config.LoadYAML(filepath.Join(projectPath, projectFile), project); err != nil {
		return nil, fmt.Errorf("failed to load project %q: %w", projectID, err)
	}

	if err := l.loadMisuses(project, filepath.Join(projectPath, misusesDir)); err != nil {
		return nil, err
	}
	if err := l.loadVersions(project, filepath.Join(projectPath, versionsDir)); err != nil {
		return nil, err
	}

	l.logger.Debug("loaded project", "project", projectID,
		"versions", len(project.Versions), "misuses", len(project.misuses))
	return project, nil
}

func (l *Loader) loadMisuses(project *Project, misusesPath string) error {
	entries, err := os.ReadDir(misusesPath)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to read misuses of %q: %w", project.ID, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		misuse := &Misuse{ID: fmt.Sprintf("%s.%s", project.ID, entry.Name())}
		path := filepath.Join(misusesPath, entry.Name(), misuseFile)
		if err := config.LoadYAML(path, misuse); err != nil {
			return fmt.Errorf("failed to load misuse %q: %w", misuse.ID, err)
		}
		project.misuses[entry.Name()] = misuse
	}
	return nil
}

func (l *Loader) loadVersions(project *Project, versionsPath string) error {
	entries, err := os.ReadDir(versionsPath)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to read versions of %q: %w", project.ID, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		version := &ProjectVersion{VersionID: entry.Name()}
		path := filepath.Join(versionsPath, entry.Name(), versionFile)
		if err := config.LoadYAML(path, version); err != nil {
			return fmt.Errorf("failed to load version %q of %q: %w", entry.Name(), project.ID, err)
		}

		for _, misuseID := range version.MisuseIDs {
			misuse := project.Misuse(misuseID)
			if misuse == nil {
				l.logger.Warn("version references unknown misuse",
					"project", project.ID, "version", version.VersionID, "misuse", misuseID)
				continue
			}
			version.Misuses = append(version.Misuses, misuse)
		}
		project.Versions = append(project.Versions, version)
	}
	return nil
}
