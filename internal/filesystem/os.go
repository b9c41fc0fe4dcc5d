package filesystem

import (
	"io/fs"
	"os"
)

// OSFileSystem implements the message file access contract using operating system primitives.
type OSFileSystem struct{}

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads file contents.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile replaces file contents, keeping the permissions of an existing file.
func (OSFileSystem) WriteFile(path string, data []byte, permissions fs.FileMode) error {
	if fileInfo, statError := os.Stat(path); statError == nil {
		permissions = fileInfo.Mode().Perm()
	}
	return os.WriteFile(path, data, permissions)
}
