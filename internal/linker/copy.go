package linker

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"

	"github.com/spf13/afero"
)

// CopyLinker deploys payloads by copying bytes
type CopyLinker struct {
	fs afero.Fs
}

// NewCopy creates a new copy linker
func NewCopy(fs afero.Fs) *CopyLinker {
	return &CopyLinker{fs: fs}
}

// Deploy copies src to dst, replacing whatever is at dst
func (l *CopyLinker) Deploy(src, dst string) error {
	if err := l.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating destination dir: %w", err)
	}

	// Remove first so an existing symlink is replaced rather than written through
	if err := l.fs.Remove(dst); err != nil && !isNotExist(err) {
		return fmt.Errorf("removing existing file: %w", err)
	}

	return CopyFile(l.fs, src, dst)
}

// Undeploy removes the file at dst
func (l *CopyLinker) Undeploy(dst string) error {
	if err := l.fs.Remove(dst); err != nil && !isNotExist(err) {
		return fmt.Errorf("removing file: %w", err)
	}
	return nil
}

// IsDeployed checks if dst exists
func (l *CopyLinker) IsDeployed(dst string) (bool, error) {
	return Exists(l.fs, dst)
}

// Method returns the link method
func (l *CopyLinker) Method() domain.LinkMethod {
	return domain.LinkCopy
}

// CopyFile streams src to dst on fs, creating or truncating dst with src's mode
func CopyFile(fsys afero.Fs, src, dst string) (err error) {
	srcFile, err := fsys.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	dstFile, err := fsys.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}
	defer func() {
		if cerr := dstFile.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing destination: %w", cerr)
		}
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("copying file: %w", err)
	}

	return nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
