package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDescriptor marks descriptors that carry neither a remote
// repository id nor a local bundle path.
var ErrInvalidDescriptor = errors.New("catalog: descriptor needs a pdbId or a path")

// Mode identifies how a protein structure is sourced.
type Mode int

const (
	// ModeInvalid means the descriptor cannot be loaded.
	ModeInvalid Mode = iota
	// ModeRemote loads the structure from the public repository by id.
	ModeRemote
	// ModeLocal loads the structure from a local file bundle.
	ModeLocal
)

func (m Mode) String() string {
	switch m {
	case ModeRemote:
		return "remote"
	case ModeLocal:
		return "local"
	default:
		return "invalid"
	}
}

// ProteinDescriptor identifies one selectable protein. PDBID selects
// remote repository loading, Path selects a local file bundle; exactly one
// is expected. When both are present PDBID wins.
type ProteinDescriptor struct {
	Name  string `json:"name" yaml:"name"`
	PDBID string `json:"pdbId,omitempty" yaml:"pdbId,omitempty"`
	Path  string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Mode reports how the descriptor should be loaded.
func (d ProteinDescriptor) Mode() Mode {
	switch {
	case strings.TrimSpace(d.PDBID) != "":
		return ModeRemote
	case strings.TrimSpace(d.Path) != "":
		return ModeLocal
	default:
		return ModeInvalid
	}
}

// Validate returns ErrInvalidDescriptor when the descriptor has no usable
// structure source.
func (d ProteinDescriptor) Validate() error {
	if d.Mode() == ModeInvalid {
		return fmt.Errorf("catalog: descriptor %q: %w", d.Name, ErrInvalidDescriptor)
	}
	return nil
}
