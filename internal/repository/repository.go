package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KostasZigo/gogit-odb/internal/constants"
	"github.com/KostasZigo/gogit-odb/internal/objects"
)

var (
	// ErrAlreadyInitialized is returned when init targets an existing store directory.
	ErrAlreadyInitialized = errors.New("repository already exists")

	// ErrRepositoryNotFound is returned when no store directory is found walking up the tree.
	ErrRepositoryNotFound = errors.New("repository not found")
)

// InitRepository creates the store directory layout at storeDir:
// objects/, refs/heads/, refs/tags/ and a HEAD pointing at the default branch.
func InitRepository(storeDir string) error {
	if err := checkRepositoryDoesNotExist(storeDir); err != nil {
		return err
	}

	// Track if initialization of store directories and files was successful.
	// Anything created before a failure is removed by the deferred cleanup.
	var initSuccess bool
	defer func() {
		if !initSuccess {
			cleanupRepository(storeDir)
		}
	}()

	directories := []string{
		storeDir,
		filepath.Join(storeDir, constants.Objects),
		filepath.Join(storeDir, constants.Refs),
		filepath.Join(storeDir, constants.Refs, constants.Heads),
		filepath.Join(storeDir, constants.Refs, constants.Tags),
	}

	for _, directory := range directories {
		if err := os.MkdirAll(directory, constants.DirPerms); err != nil {
			return fmt.Errorf("%w: failed to create directory %s: %w", objects.ErrStoreWrite, directory, err)
		}
	}

	headFile := filepath.Join(storeDir, constants.Head)
	headContent := constants.DefaultRefPrefix + constants.DefaultBranch + "\n"

	if err := os.WriteFile(headFile, []byte(headContent), constants.FilePerms); err != nil {
		return fmt.Errorf("%w: failed to create %s file: %w", objects.ErrStoreWrite, constants.Head, err)
	}

	initSuccess = true
	slog.Debug("Initialized repository", "path", storeDir)
	return nil
}

func checkRepositoryDoesNotExist(path string) error {
	_, err := os.Stat(path)

	// If path doesn't exist there is no error
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to check repository path: %w", err)
	}

	return fmt.Errorf("%w at %s", ErrAlreadyInitialized, path)
}

// Removes the entire store directory if it exists
func cleanupRepository(storeDir string) {
	if _, err := os.Stat(storeDir); err == nil {
		slog.Debug("Cleaning up partial repository initialization",
			"path", storeDir)

		if err := os.RemoveAll(storeDir); err != nil {
			slog.Warn("Failed to cleanup repository directory",
				"path", storeDir,
				"error", err)
		} else {
			slog.Debug("Successfully cleaned up repository directory",
				"path", storeDir)
		}
	}
}

// FindRepository walks up from startDir and returns the first store directory
// named storeDirName.
func FindRepository(startDir, storeDirName string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		storeDir := filepath.Join(dir, storeDirName)
		if info, err := os.Stat(storeDir); err == nil && info.IsDir() {
			return storeDir, nil
		}

		// Dir returns all but the last element of path
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: %s directory not found", ErrRepositoryNotFound, storeDirName)
		}
		dir = parent
	}
}
