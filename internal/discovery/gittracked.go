package discovery

import (
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	streamyerrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

// ListTrackedGoFiles opens the git repository rooted at repoRoot and returns
// the absolute paths of every tracked .go file at HEAD, sorted for
// deterministic scan order. Untracked and ignored files (build output,
// vendored copies, scratch files under .gitignore) never reach the
// source-scan strategy, so registration order stays reproducible across a
// machine's local clutter.
func ListTrackedGoFiles(repoRoot string) ([]string, error) {
	repo, err := git.PlainOpen(repoRoot)
	if err != nil {
		return nil, streamyerrors.NewParseError(repoRoot, 0, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, streamyerrors.NewParseError(repoRoot, 0, err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, streamyerrors.NewParseError(repoRoot, 0, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, streamyerrors.NewParseError(repoRoot, 0, err)
	}

	var paths []string
	walkErr := tree.Files().ForEach(func(f *object.File) error {
		if strings.HasSuffix(f.Name, ".go") {
			paths = append(paths, filepath.Join(repoRoot, f.Name))
		}
		return nil
	})
	if walkErr != nil {
		return nil, streamyerrors.NewParseError(repoRoot, 0, walkErr)
	}

	sort.Strings(paths)
	return paths, nil
}
