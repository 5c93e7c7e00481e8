package constants

import "os"

// Command name constants used in tests and error messages.
// Cobra Use fields remain inline for CLI discoverability.
const (
	InitCmdName       = "init"
	HashObjectCmdName = "hash-object"
	CatFileCmdName    = "cat-file"
)

// Repository directory and file names define the gogit metadata structure.
const (
	// Gogit is the default store directory name, overridable through the store.dir setting.
	Gogit = ".gogit"

	// Objects holds the object buckets (objects/<2 hex>/<38 hex>).
	Objects = "objects"

	// Refs contains branch and tag references.
	Refs = "refs"

	// Heads stores branch pointers under refs/.
	Heads = "heads"

	// Tags stores tag pointers under refs/.
	Tags = "tags"

	// Head points to the default branch.
	Head = "HEAD"
)

// Default repository values.
const (
	// DefaultBranch is the initial branch name for new repositories.
	DefaultBranch = "main"

	// DefaultRefPrefix is prepended to branch names in HEAD file.
	DefaultRefPrefix = "ref: refs/heads/"
)

// File system permissions for created files and directories.
const (
	// DirPerms grants read/write/execute to owner, read/execute to others (rwxr-xr-x).
	DirPerms os.FileMode = 0755

	// FilePerms grants read/write to owner, read-only to others (rw-r--r--).
	FilePerms os.FileMode = 0644

	// ObjectPerms makes stored objects read-only (r--r--r--). Objects are never rewritten in place.
	ObjectPerms os.FileMode = 0444
)

// Cryptographic hash properties.
const (
	// HashByteLength is byte length of SHA-1 hash (20 bytes).
	HashByteLength = 20

	// HashStringLength is hex string length of SHA-1 hash (40 characters).
	HashStringLength = 40

	// HashDirPrefixLength is subdirectory prefix length under objects/ (2 characters).
	HashDirPrefixLength = 2
)

// Object format constants.
const (
	// NullByte separates header from content in objects.
	NullByte = '\x00'

	// HeaderSeparator separates kind and size in the object header.
	HeaderSeparator = ' '

	// MaxHeaderLength bounds the header scan: longest kind name, a space,
	// 19 decimal digits and the NUL terminator fit well within it.
	MaxHeaderLength = 64
)

// Configuration defaults.
const (
	// ConfigFileName is the config file base name (gogit.yaml).
	ConfigFileName = "gogit"

	// EnvPrefix prefixes environment overrides (GOGIT_STORE_DIR, ...).
	EnvPrefix = "GOGIT"

	// DefaultLogLevel keeps debug chatter off stderr unless asked for.
	DefaultLogLevel = "warn"
)
