package git

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/gitsight/go-vcsurl"
)

// SourceURLBuilder returns a browsable repository URL for a checkout-relative
// source file, or the empty string when no URL can be built.
type SourceURLBuilder func(file string) string

// NewSourceURLBuilder builds a host-specific source permalink strategy from
// checkout metadata, pinned to the analyzed commit. Incomplete metadata or an
// unrecognized remote yields a noop builder so callers degrade to plain text
// locations.
func NewSourceURLBuilder(md *RepositoryMetadata) SourceURLBuilder {
	noop := func(string) string { return "" }

	if md == nil || md.RepositoryFullName == nil || md.CommitHash == nil {
		return noop
	}

	info, err := vcsurl.Parse(*md.RepositoryFullName)
	if err != nil {
		return noop
	}

	commit := *md.CommitHash
	subfolder := md.Subfolder
	return func(file string) string {
		if file == "" {
			return ""
		}
		// The misuse file is checkout-relative; the permalink needs the
		// repository-relative path.
		file = path.Join(subfolder, filepath.ToSlash(file))
		switch info.Host {
		case vcsurl.GitLab:
			return fmt.Sprintf("https://%s/%s/-/blob/%s/%s", info.Host, info.FullName, commit, file)
		case vcsurl.Bitbucket:
			return fmt.Sprintf("https://%s/%s/src/%s/%s", info.Host, info.FullName, commit, file)
		default:
			return fmt.Sprintf("https://%s/%s/blob/%s/%s", info.Host, info.FullName, commit, file)
		}
	}
}
