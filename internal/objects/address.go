package objects

import (
	"encoding/hex"
	"fmt"

	"github.com/KostasZigo/gogit-odb/internal/constants"
)

// Address is the SHA-1 digest of an object's canonical encoding.
type Address [constants.HashByteLength]byte

// String returns the 40 lowercase hex character form.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// ParseAddress converts a 40 character hex string into an Address.
// Upper-case digits are accepted and normalized by String.
func ParseAddress(s string) (Address, error) {
	var addr Address
	if len(s) != constants.HashStringLength {
		return addr, fmt.Errorf("%w: %q must be %d hex characters, got %d",
			ErrInvalidAddress, s, constants.HashStringLength, len(s))
	}

	if _, err := hex.Decode(addr[:], []byte(s)); err != nil {
		return addr, fmt.Errorf("%w: %q is not hexadecimal", ErrInvalidAddress, s)
	}

	return addr, nil
}

// Location is the storage key of an object: a two character bucket
// and the remaining 38 characters naming the entry inside it.
type Location struct {
	Bucket string
	Entry  string
}

// LocationOf derives the location from an address.
func LocationOf(addr Address) Location {
	hash := addr.String()
	return Location{
		Bucket: hash[:constants.HashDirPrefixLength],
		Entry:  hash[constants.HashDirPrefixLength:],
	}
}

// Key returns the slash separated "bucket/entry" form.
func (l Location) Key() string {
	return l.Bucket + "/" + l.Entry
}
