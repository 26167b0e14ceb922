package descriptor

import "strings"

// Descriptor records one concrete type shown to satisfy an interface
// contract, as emitted by the offline analysis pipeline.
type Descriptor struct {
	// Fragment is the rendered markup text for the implementation
	// (markdown), e.g. "impl `Eq` for `Matrix`".
	Fragment string `json:"fragment" msgpack:"fragment"`
	// Synthetic marks implementations produced by the toolchain rather
	// than written by hand.
	Synthetic bool `json:"synthetic" msgpack:"synthetic"`
	// TypePath is the fully qualified path of the implementing type as
	// ordered name segments, e.g. ["collections", "Matrix"].
	TypePath []string `json:"type_path" msgpack:"type_path"`
}

// Path returns the type path joined with "::".
func (d Descriptor) Path() string {
	return strings.Join(d.TypePath, "::")
}

// Map associates a documentation-module name with the ordered list of
// implementor descriptors for that module. Slice order is declaration
// order from the analysis and is the display order; it must never be
// re-sorted or deduplicated.
type Map map[string][]Descriptor

// Modules returns the module names present in the map, unsorted.
// Callers that display the names pick their own ordering.
func (m Map) Modules() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names
}

// Count returns the total number of descriptors across all modules.
func (m Map) Count() int {
	n := 0
	for _, descs := range m {
		n += len(descs)
	}
	return n
}
