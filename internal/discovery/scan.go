package discovery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/DonovanMods/bundle-mod-manager/internal/linker"

	"github.com/spf13/afero"
)

// Scan walks each root looking for files named exeName (case-insensitive).
// Directories deeper than maxDepth levels below a root are not entered, which
// bounds the walk on arbitrarily large trees. Unreadable directories are skipped.
// A symlinked root is followed and results are reported under the root as given.
func Scan(ctx context.Context, fsys afero.Fs, roots []string, exeName string, maxDepth int) ([]string, error) {
	var found []string
	for _, root := range roots {
		root = filepath.Clean(root)
		walkRoot, err := linker.EvalSymlinks(fsys, root)
		if err != nil {
			continue
		}
		err = afero.Walk(fsys, walkRoot, func(path string, info os.FileInfo, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				if info != nil && info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if info.IsDir() {
				if depth(walkRoot, path) > maxDepth {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.EqualFold(info.Name(), exeName) {
				if walkRoot != root {
					if rel, err := filepath.Rel(walkRoot, path); err == nil {
						path = filepath.Join(root, rel)
					}
				}
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return found, err
			}
			// Missing or unreadable root; carry on with the others
			continue
		}
	}
	return found, nil
}

// depth counts the path components of path below root
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
