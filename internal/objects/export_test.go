package objects

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KostasZigo/gogit-odb/internal/constants"
)

// assertBlobHash verifies blob hash matches the address of its canonical encoding.
func assertBlobHash(t *testing.T, blob *Blob, content []byte) {
	t.Helper()

	expectedHash := AddressOf(Encode(KindBlob, content))
	if blob.Hash() != expectedHash {
		t.Fatalf("Expected hash [%s], got [%s]", expectedHash, blob.Hash())
	}
}

// assertBlobContent verifies blob stores exact content and correct size.
func assertBlobContent(t *testing.T, blob *Blob, expectedContent []byte) {
	t.Helper()

	if blob.Size() != len(expectedContent) {
		t.Fatalf("Expected size %d, got %d", len(expectedContent), blob.Size())
	}

	if string(blob.Content()) != string(expectedContent) {
		t.Fatalf("Expected content [%q], got [%q]", expectedContent, blob.Content())
	}
}

// newTestStore creates a store directory with an objects folder and returns a store on it.
func newTestStore(t *testing.T) (*ObjectStore, string) {
	t.Helper()

	storeDir := filepath.Join(t.TempDir(), constants.Gogit)
	if err := os.MkdirAll(filepath.Join(storeDir, constants.Objects), constants.DirPerms); err != nil {
		t.Fatalf("Failed to create %s/%s: %v", constants.Gogit, constants.Objects, err)
	}

	return NewObjectStore(storeDir), storeDir
}

// putBlob stores content as a blob and fails the test on error.
func putBlob(t *testing.T, store *ObjectStore, content []byte) Address {
	t.Helper()

	addr, err := store.Put(KindBlob, content)
	if err != nil {
		t.Fatalf("Failed to store blob: %v", err)
	}

	return addr
}
