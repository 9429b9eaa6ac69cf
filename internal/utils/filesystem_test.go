package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileOperations(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("EnsureDir", func(t *testing.T) {
		path := filepath.Join(tmpDir, "reports", "nested", "dir")
		if err := EnsureDir(path); err != nil {
			t.Errorf("EnsureDir() error = %v", err)
		}
		if !DirExists(path) {
			t.Error("Directory was not created")
		}

		// Ensure existing dir (should not error)
		if err := EnsureDir(path); err != nil {
			t.Errorf("EnsureDir() on existing dir error = %v", err)
		}
	})

	t.Run("WriteFile", func(t *testing.T) {
		path := filepath.Join(tmpDir, "out", "statistics.txt")
		content := []byte("Total agent invocations: 3")
		if err := WriteFile(path, content); err != nil {
			t.Errorf("WriteFile() error = %v", err)
		}
		if !FileExists(path) {
			t.Error("File was not created")
		}

		readContent, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("ReadFile() error = %v", err)
		}
		if string(readContent) != string(content) {
			t.Errorf("ReadFile() = %s, want %s", readContent, content)
		}
	})

	t.Run("FileExists", func(t *testing.T) {
		if FileExists(filepath.Join(tmpDir, "nonexistent.txt")) {
			t.Error("FileExists() returned true for non-existent file")
		}
	})
}
