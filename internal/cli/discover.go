// Package cli holds the discovery-wiring logic shared by the weave
// subcommands: turning a project's configured entity/operation directories
// into a populated registry via the source-scan strategy.
package cli

import (
	"os"
	"path/filepath"

	"github.com/alexisbeaulieu97/weave/internal/config"
	"github.com/alexisbeaulieu97/weave/internal/discovery"
	"github.com/alexisbeaulieu97/weave/internal/registry"
)

// BuildRegistry scans cfg's configured entity and operation directories with
// the source-scan strategy and returns the populated registry. Files are
// listed with ListTrackedGoFiles (git-tracked files, sorted by path), or by
// a plain directory walk when projectRoot is not a git checkout. They are
// scanned in that listing order, whatever the order of the directories in
// the configuration. When no file falls under a configured directory, every
// listed file is scanned.
func BuildRegistry(projectRoot string, cfg *config.ProjectConfig) (*registry.Registry, error) {
	reg := registry.New()
	scanner := discovery.NewSourceScan(reg)

	tracked, err := discovery.ListTrackedGoFiles(projectRoot)
	if err != nil {
		// Falling back to a plain filesystem walk keeps discovery usable
		// outside a git checkout (a freshly unpacked tarball, a CI archive).
		tracked, err = walkGoFiles(projectRoot)
		if err != nil {
			return nil, err
		}
	}

	dirs := append(append([]string{}, cfg.Discovery.EntitiesDirs...), cfg.Discovery.OperationsDirs...)
	selected := filterByDirs(tracked, projectRoot, dirs)
	if len(selected) == 0 {
		selected = tracked
	}

	if err := scanner.ScanFiles(selected); err != nil {
		return nil, err
	}
	return reg, nil
}

func filterByDirs(paths []string, root string, dirs []string) []string {
	if len(dirs) == 0 {
		return nil
	}
	var out []string
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			continue
		}
		for _, d := range dirs {
			if rel == d || len(rel) > len(d) && rel[:len(d)+1] == d+string(filepath.Separator) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func walkGoFiles(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == "vendor" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".go" {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}
