package objects

import (
	"fmt"
	"io"
	"os"
)

// Blob is raw file content with no structural interpretation.
type Blob struct {
	content []byte
	hash    Address
}

func NewBlob(content []byte) *Blob {
	return &Blob{
		content: content,
		hash:    AddressOf(Encode(KindBlob, content)),
	}
}

// NewBlobFromFile reads the file as raw bytes; content is not required to be text.
func NewBlobFromFile(filepath string) (*Blob, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filepath, err)
	}
	return NewBlob(content), nil
}

func NewBlobFromReader(r io.Reader) (*Blob, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return NewBlob(content), nil
}

func (b *Blob) Kind() Kind {
	return KindBlob
}

func (b *Blob) Hash() Address {
	return b.hash
}

func (b *Blob) Content() []byte {
	return b.content
}

func (b *Blob) Size() int {
	return len(b.content)
}

// Data returns the canonical encoding "blob <size>\0<content>".
func (b *Blob) Data() []byte {
	return Encode(KindBlob, b.content)
}

func (b *Blob) String() string {
	return fmt.Sprintf("Blob{hash: %s, size: %d bytes}", b.hash, b.Size())
}
