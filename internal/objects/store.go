package objects

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KostasZigo/gogit-odb/internal/constants"
	"github.com/klauspost/compress/zlib"
)

// ObjectStore persists objects under <root>/objects/<bucket>/<entry>.
// It holds no state between calls; the filesystem is the only shared resource.
type ObjectStore struct {
	root  string // store directory, e.g. <repo>/.gogit
	level int    // zlib compression level
}

// StoreOption configures an ObjectStore.
type StoreOption func(*ObjectStore)

// WithCompressionLevel sets the zlib level used by Put.
func WithCompressionLevel(level int) StoreOption {
	return func(store *ObjectStore) {
		store.level = level
	}
}

// NewObjectStore returns a store rooted at the given store directory.
func NewObjectStore(root string, opts ...StoreOption) *ObjectStore {
	store := &ObjectStore{
		root:  root,
		level: zlib.DefaultCompression,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Path returns the on-disk path of the entry for addr.
func (store *ObjectStore) Path(addr Address) string {
	return filepath.Join(store.root, constants.Objects, filepath.FromSlash(LocationOf(addr).Key()))
}

// Put stores payload as an object of the given kind and returns its address.
// Storing an object that already exists is a no-op success.
func (store *ObjectStore) Put(kind Kind, payload []byte) (Address, error) {
	if !kind.IsSupported() {
		return Address{}, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}

	canonical := Encode(kind, payload)
	addr := AddressOf(canonical)
	objectFile := store.Path(addr)

	// Same address means same content, nothing to write
	_, err := os.Stat(objectFile)
	if err == nil {
		slog.Debug("Object with this hash already exists",
			"hash", addr.String())
		return addr, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return Address{}, fmt.Errorf("%w %s: %w", ErrStoreWrite, addr, err)
	}

	objectDir := filepath.Dir(objectFile)
	if err := os.MkdirAll(objectDir, constants.DirPerms); err != nil {
		return Address{}, fmt.Errorf("%w %s: failed to create object directory: %w", ErrStoreWrite, addr, err)
	}

	compressedData, err := CompressLevel(canonical, store.level)
	if err != nil {
		return Address{}, fmt.Errorf("%w %s: failed to compress object: %w", ErrStoreWrite, addr, err)
	}

	if err := writeFileAtomic(objectFile, compressedData); err != nil {
		return Address{}, fmt.Errorf("%w %s: %w", ErrStoreWrite, addr, err)
	}

	slog.Debug("Stored object",
		"hash", addr.String(),
		"kind", kind,
		"size", len(payload),
		"compressed", len(compressedData))

	return addr, nil
}

// writeFileAtomic writes data to a temporary file in the target directory and
// renames it into place, so readers see either no file or the whole file.
func writeFileAtomic(target string, data []byte) error {
	tempFile, err := os.CreateTemp(filepath.Dir(target), "tmp_obj_*")
	if err != nil {
		return fmt.Errorf("failed to create temporary object file: %w", err)
	}
	tempName := tempFile.Name()
	// Removing after a successful rename fails harmlessly
	defer os.Remove(tempName)

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write object file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close object file: %w", err)
	}
	if err := os.Chmod(tempName, constants.ObjectPerms); err != nil {
		return fmt.Errorf("failed to set object file permissions: %w", err)
	}

	if err := os.Rename(tempName, target); err != nil {
		// A concurrent writer may have placed the identical object first
		if _, statErr := os.Stat(target); statErr == nil {
			slog.Debug("Object written concurrently", "path", target)
			return nil
		}
		return fmt.Errorf("failed to move object file into place: %w", err)
	}

	return nil
}

// Get reads and validates the object stored at address.
// The address is validated before the filesystem is touched.
func (store *ObjectStore) Get(address string) (Kind, []byte, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return "", nil, err
	}

	file, err := store.open(addr)
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	reader, err := Decompress(file)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read object %s: %w", addr, err)
	}
	defer reader.Close()

	kind, payload, err := DecodeStream(reader)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read object %s: %w", addr, err)
	}

	return kind, payload, nil
}

// Stat decodes only the header of the object at address.
func (store *ObjectStore) Stat(address string) (Kind, int64, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return "", 0, err
	}

	file, err := store.open(addr)
	if err != nil {
		return "", 0, err
	}
	defer file.Close()

	reader, err := Decompress(file)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read object %s: %w", addr, err)
	}
	defer reader.Close()

	kind, size, err := DecodeHeader(bufio.NewReader(reader))
	if err != nil {
		return "", 0, fmt.Errorf("failed to read object %s: %w", addr, err)
	}

	return kind, size, nil
}

// ReadBlob reads the object at address as a Blob.
func (store *ObjectStore) ReadBlob(address string) (*Blob, error) {
	_, payload, err := store.Get(address)
	if err != nil {
		return nil, err
	}
	return NewBlob(payload), nil
}

func (store *ObjectStore) open(addr Address) (*os.File, error) {
	file, err := os.Open(store.Path(addr))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, addr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open object %s: %w", addr, err)
	}
	return file, nil
}
