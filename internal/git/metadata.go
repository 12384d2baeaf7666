// Package git reads metadata from a project checkout for the review page
// header. Checkouts are consumed read-only; a checkout that is not a git
// repository degrades to empty metadata.
package git

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// RepositoryMetadata describes the checkout a detector run analyzed.
type RepositoryMetadata struct {
	BranchName         *string
	CommitHash         *string
	RepositoryFullName *string
	Subfolder          string
	RepoRootFolder     string
}

// CollectRepositoryMetadata collects branch name, commit hash, repository
// full name, subfolder and repository root folder for the given checkout.
func CollectRepositoryMetadata(checkoutFolder string) (*RepositoryMetadata, error) {
	if checkoutFolder == "" {
		return &RepositoryMetadata{}, fmt.Errorf("checkout folder is not set")
	}

	if absCheckout, err := filepath.Abs(checkoutFolder); err == nil {
		checkoutFolder = absCheckout
	}

	md := &RepositoryMetadata{
		RepoRootFolder: filepath.Clean(checkoutFolder),
	}

	repoRootFolder, err := findGitRepositoryPath(checkoutFolder)
	if err != nil {
		return md, err
	}

	md.RepoRootFolder = filepath.Clean(repoRootFolder)

	repo, err := git.PlainOpen(repoRootFolder)
	if err != nil {
		return md, fmt.Errorf("failed to open repository: %w", err)
	}

	if rel, err := filepath.Rel(repoRootFolder, checkoutFolder); err == nil && rel != "." {
		md.Subfolder = filepath.ToSlash(rel)
	}

	if head, err := repo.Head(); err == nil {
		if head.Name().IsBranch() {
			branchName := head.Name().Short()
			md.BranchName = &branchName
		}

		hash := head.Hash().String()
		md.CommitHash = &hash
	}

	if remote, err := repo.Remote("origin"); err == nil {
		if cfg := remote.Config(); cfg != nil && len(cfg.URLs) > 0 {
			repositoryFullName := strings.TrimSuffix(cfg.URLs[0], ".git")
			md.RepositoryFullName = &repositoryFullName
		}
	}

	return md, nil
}

// findGitRepositoryPath walks up from the checkout folder until it finds a
// git repository root.
func findGitRepositoryPath(checkoutFolder string) (string, error) {
	if checkoutFolder == "" {
		return "", fmt.Errorf("checkout folder is not set")
	}

	for {
		_, err := git.PlainOpen(checkoutFolder)
		if err == nil {
			return checkoutFolder, nil
		}

		parent := filepath.Dir(checkoutFolder)
		if parent == checkoutFolder {
			break
		}
		checkoutFolder = parent
	}

	return "", fmt.Errorf("checkout folder is not a git repository")
}
