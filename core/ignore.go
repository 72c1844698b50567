package core

import (
	"os"
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFileName is consulted in the download destination before any file is
// written; matching files are never overwritten.
const IgnoreFileName = ".rinthignore"

// LoadIgnore compiles the ignore rules of the given directory. A missing
// ignore file yields an empty rule set, not an error.
func LoadIgnore(dir string) (*gitignore.GitIgnore, error) {
	path := filepath.Join(dir, IgnoreFileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return gitignore.CompileIgnoreLines(), nil
		}
		return nil, err
	}
	return gitignore.CompileIgnoreFile(path)
}
