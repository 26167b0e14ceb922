package descriptor

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyModuleName indicates a map key with no module name.
	ErrEmptyModuleName = errors.New("empty module name")
	// ErrEmptyTypePath indicates a descriptor whose type path has no segments.
	ErrEmptyTypePath = errors.New("empty type path")
	// ErrEmptyTypePathSegment indicates a blank segment inside a type path.
	ErrEmptyTypePathSegment = errors.New("empty type path segment")
)

// Validate checks that every descriptor in the map is well formed. It
// returns the first problem found, wrapped with enough position detail
// to locate the offending record.
func Validate(m Map) error {
	for module, descs := range m {
		if module == "" {
			return ErrEmptyModuleName
		}
		for i, d := range descs {
			if len(d.TypePath) == 0 {
				return fmt.Errorf("module %q, descriptor %d: %w", module, i, ErrEmptyTypePath)
			}
			for j, seg := range d.TypePath {
				if seg == "" {
					return fmt.Errorf("module %q, descriptor %d, segment %d: %w", module, i, j, ErrEmptyTypePathSegment)
				}
			}
		}
	}
	return nil
}
