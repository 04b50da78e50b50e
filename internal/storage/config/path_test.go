package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestParseExecutablePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		setup   func(t *testing.T) string // returns path to use
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid absolute path to existing executable",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				path := filepath.Join(dir, "Game.exe")
				if err := os.WriteFile(path, []byte("MZ"), 0755); err != nil {
					t.Fatalf("failed to create test file: %v", err)
				}
				return path
			},
			wantErr: false,
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
			errMsg:  "executable path cannot be empty",
		},
		{
			name:    "whitespace only",
			path:    "   ",
			wantErr: true,
			errMsg:  "executable path cannot be empty",
		},
		{
			name:    "relative path",
			path:    "Game.exe",
			wantErr: true,
			errMsg:  "executable path must be absolute",
		},
		{
			name:    "path with parent directory traversal",
			path:    "/games/../games/Game.exe",
			wantErr: true,
			errMsg:  "executable path contains invalid traversal",
		},
		{
			name: "path to non-existent file",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "Missing.exe")
			},
			wantErr: true,
			errMsg:  "executable does not exist",
		},
		{
			name: "path to directory instead of file",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			wantErr: true,
			errMsg:  "executable path is a directory, not a file",
		},
		{
			name: "dots inside a file name are allowed",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				path := filepath.Join(dir, "Game..v2.x86_64")
				if err := os.WriteFile(path, []byte("ELF"), 0755); err != nil {
					t.Fatalf("failed to create test file: %v", err)
				}
				return path
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if tt.setup != nil {
				path = tt.setup(t)
			}

			got, err := ParseExecutablePath(afero.NewOsFs(), path)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseExecutablePath(%q) expected error, got nil", path)
					return
				}
				if tt.errMsg != "" && err.Error() != tt.errMsg {
					t.Errorf("ParseExecutablePath(%q) error = %q, want %q", path, err.Error(), tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Errorf("ParseExecutablePath(%q) unexpected error: %v", path, err)
				return
			}

			if got != path {
				t.Errorf("ParseExecutablePath(%q) = %q, want %q", path, got, path)
			}
		})
	}
}

func TestParseExecutablePath_MemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/games/Heroes/Heroes.exe", []byte("MZ"), 0755); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	got, err := ParseExecutablePath(fs, "/games/Heroes/Heroes.exe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/games/Heroes/Heroes.exe" {
		t.Errorf("got %q", got)
	}

	if _, err := ParseExecutablePath(fs, "/games/Heroes"); err == nil {
		t.Error("expected error for directory")
	}
}
