package testutils

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/KostasZigo/gogit-odb/internal/constants"
	"github.com/klauspost/compress/zlib"
)

// HiBlobContent and HiBlobHash are the reference vector: SHA-1 of "blob 3\0hi\n".
const (
	HiBlobContent = "hi\n"
	HiBlobHash    = "45b983be36b73c0788dc9cbcb76cbb80fc7bb057"
)

// RandomString generates a random hex string of n bytes
func RandomString(n int) string {
	bytes := make([]byte, n)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// RandomBytes generates n random bytes, arbitrary binary content.
func RandomBytes(n int) []byte {
	b := make([]byte, n)
	rand.Read(b)
	return b
}

// RandomHash generates a random 40-character SHA-1 hash
func RandomHash() string {
	return RandomString(constants.HashByteLength)
}

// SetupTestRepoWithGogitDir creates a temporary directory with .gogit/objects structure.
// This is useful for tests that need the repository structure but not full initialization.
func SetupTestRepoWithGogitDir(t *testing.T) string {
	t.Helper()

	repoPath := t.TempDir()
	objectsDir := filepath.Join(repoPath, constants.Gogit, constants.Objects)

	if err := os.MkdirAll(objectsDir, constants.DirPerms); err != nil {
		t.Fatalf("Failed to create %s/%s: %v", constants.Gogit, constants.Objects, err)
	}

	return repoPath
}

// CreateTestFile creates a file with given content in the specified directory.
// Returns the full path to the created file.
func CreateTestFile(t *testing.T, dir, filename string, content []byte) string {
	t.Helper()

	filePath := filepath.Join(dir, filename)
	if err := os.WriteFile(filePath, content, constants.FilePerms); err != nil {
		t.Fatalf("Failed to create test file %s: %v", filename, err)
	}

	return filePath
}

// WriteRawObject compresses canonical bytes and places them at the object path for hash,
// bypassing the store. Used to plant crafted or corrupted objects.
func WriteRawObject(t *testing.T, storeDir, hash string, canonical []byte) string {
	t.Helper()

	var buffer bytes.Buffer
	writer := zlib.NewWriter(&buffer)
	if _, err := writer.Write(canonical); err != nil {
		t.Fatalf("Failed to compress object: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to flush compressed object: %v", err)
	}

	return WriteObjectFile(t, storeDir, hash, buffer.Bytes())
}

// WriteObjectFile places raw file bytes at the object path for hash.
func WriteObjectFile(t *testing.T, storeDir, hash string, data []byte) string {
	t.Helper()

	objectDir := filepath.Join(storeDir, constants.Objects, hash[:constants.HashDirPrefixLength])
	if err := os.MkdirAll(objectDir, constants.DirPerms); err != nil {
		t.Fatalf("Failed to create object directory: %v", err)
	}

	objectPath := filepath.Join(objectDir, hash[constants.HashDirPrefixLength:])
	if err := os.WriteFile(objectPath, data, constants.FilePerms); err != nil {
		t.Fatalf("Failed to write object file: %v", err)
	}

	return objectPath
}

// AssertFileExists checks that a file exists at the given path.
// Fails the test if the file doesn't exist.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected file to exist at %s", path)
	}
}

// AssertFileNotExists checks that a file does NOT exist at the given path.
// Fails the test if the file exists.
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to NOT exist at %s", path)
	}
}

// AssertDirExists checks that a directory exists at the given path.
// Fails the test if the directory doesn't exist.
func AssertDirExists(t *testing.T, path string) {
	t.Helper()

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected directory to exist at %s", path)
		return
	}
	if err != nil {
		t.Errorf("Failed to stat directory %s: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("Expected %s to be a directory, but it's a file", path)
	}
}

// AssertRepositoryStructure validates complete .gogit directory structure under repoPath.
// Verifies objects/, refs/heads/, refs/tags/ exist and HEAD contains correct branch reference.
func AssertRepositoryStructure(t *testing.T, repoPath string) {
	t.Helper()

	AssertStoreStructure(t, filepath.Join(repoPath, constants.Gogit))
}

// AssertStoreStructure validates the layout of a store directory.
func AssertStoreStructure(t *testing.T, storeDir string) {
	t.Helper()

	AssertDirExists(t, storeDir)

	expectedDirs := []string{
		constants.Objects,
		constants.Refs,
		filepath.Join(constants.Refs, constants.Heads),
		filepath.Join(constants.Refs, constants.Tags),
	}
	for _, dir := range expectedDirs {
		AssertDirExists(t, filepath.Join(storeDir, dir))
	}

	headPath := filepath.Join(storeDir, constants.Head)
	AssertFileExists(t, headPath)

	content, err := os.ReadFile(headPath)
	if err != nil {
		t.Fatalf("Failed to read %s file: %v", constants.Head, err)
	}

	expectedContent := "ref: refs/heads/main\n"
	if string(content) != expectedContent {
		t.Errorf("%s content = %q, want %q", constants.Head, content, expectedContent)
	}
}
