package catalog

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Fingerprint computes a single digest identifying the current catalog
// contents. Entries contribute their relative path and content hash,
// length-prefixed so adjacent fields cannot collide.
//
// The fingerprint is purely content-based: touching a file without
// changing its bytes does not change the fingerprint, while adding,
// removing, renaming, or editing any matched file does.
func Fingerprint(entries []ScriptEntry) string {
	hasher := sha256.New()

	writeField := func(data []byte) {
		var length [8]byte
		binary.BigEndian.PutUint64(length[:], uint64(len(data)))
		hasher.Write(length[:])
		hasher.Write(data)
	}

	writeField([]byte(fmt.Sprintf("%d", len(entries))))
	for _, e := range entries {
		writeField([]byte(e.RelativePath))
		writeField([]byte(e.SHA256))
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

// StateFile persists the fingerprint of the last successful generation.
// A missing or unreadable file reads as the empty fingerprint, which
// never matches a real one, so the worst failure mode is a redundant
// regeneration.
type StateFile struct {
	path string
}

// NewStateFile returns a state file manager for the given path.
func NewStateFile(path string) *StateFile {
	return &StateFile{path: path}
}

// Read returns the persisted fingerprint, or "" when none exists.
func (s *StateFile) Read() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Write persists the fingerprint. Callers must write all outputs first:
// a crash before this point causes a redundant regeneration on the next
// run, never a missed one.
func (s *StateFile) Write(fingerprint string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(fingerprint+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", s.path, err)
	}
	return nil
}
