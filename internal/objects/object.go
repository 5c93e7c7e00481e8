package objects

// Kind is the object type tag written in front of every object ("<kind> <size>\0").
type Kind string

// Known object kinds. Only blobs are stored and decoded; the remaining names
// occupy the tag slot so the framing does not change when they are added.
const (
	KindBlob   Kind = "blob"
	KindTree   Kind = "tree"
	KindCommit Kind = "commit"
)

// IsSupported reports whether the store can encode and decode objects of this kind.
func (k Kind) IsSupported() bool {
	return k == KindBlob
}

func (k Kind) String() string {
	return string(k)
}
