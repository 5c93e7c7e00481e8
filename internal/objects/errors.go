package objects

import "errors"

// Sentinel errors returned by the codec and the object store.
// Callers classify failures with errors.Is; the wrapping error names the address or path.
var (
	// ErrInvalidAddress is returned when an address is not exactly 40 hex characters.
	ErrInvalidAddress = errors.New("invalid object address")

	// ErrObjectNotFound is returned when no entry exists at the derived location.
	ErrObjectNotFound = errors.New("object not found")

	// ErrCorruptObject is returned when the compressed stream is malformed or fails its checksum.
	ErrCorruptObject = errors.New("corrupt object")

	// ErrMalformedHeader is returned when the header lacks its NUL or space delimiter
	// or carries a non-numeric size.
	ErrMalformedHeader = errors.New("malformed object header")

	// ErrUnsupportedKind is returned for any object kind other than blob.
	ErrUnsupportedKind = errors.New("unsupported object kind")

	// ErrTruncatedObject is returned when fewer payload bytes are available than declared.
	ErrTruncatedObject = errors.New("truncated object")

	// ErrTrailingData is returned when bytes follow the declared payload.
	ErrTrailingData = errors.New("trailing data after object payload")

	// ErrStoreWrite is returned when creating a bucket or writing an entry fails.
	ErrStoreWrite = errors.New("failed to write object")
)
