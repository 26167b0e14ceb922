package descriptor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// FragmentSchema is the current schema version of fragment files.
// Increment when the wire shape changes incompatibly.
const FragmentSchema = 1

var (
	// ErrSchemaUnsupported indicates a fragment written by a newer or
	// unknown analysis pipeline.
	ErrSchemaUnsupported = errors.New("unsupported fragment schema")
	// ErrFieldMissing indicates a descriptor record lacking a required field.
	ErrFieldMissing = errors.New("missing required field")
)

// wireDescriptor mirrors Descriptor with pointer fields so that absent
// keys are distinguishable from zero values. Presence of all three
// fields is part of the input contract.
type wireDescriptor struct {
	Fragment  *string  `json:"fragment"`
	Synthetic *bool    `json:"synthetic"`
	TypePath  []string `json:"type_path"`
}

type wireFragment struct {
	Schema  *int                        `json:"schema"`
	Modules map[string][]wireDescriptor `json:"modules"`
}

// DecodeFragment parses one fragment file produced by the analysis
// pipeline. It fails on the first structural problem instead of
// returning a partially decoded map.
func DecodeFragment(data []byte) (Map, error) {
	var wire wireFragment
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode fragment: %w", err)
	}
	if wire.Schema == nil {
		return nil, fmt.Errorf("fragment header: %w: schema", ErrFieldMissing)
	}
	if *wire.Schema != FragmentSchema {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchemaUnsupported, *wire.Schema, FragmentSchema)
	}

	out := make(Map, len(wire.Modules))
	for module, records := range wire.Modules {
		descs := make([]Descriptor, 0, len(records))
		for i, rec := range records {
			switch {
			case rec.Fragment == nil:
				return nil, fmt.Errorf("module %q, descriptor %d: %w: fragment", module, i, ErrFieldMissing)
			case rec.Synthetic == nil:
				return nil, fmt.Errorf("module %q, descriptor %d: %w: synthetic", module, i, ErrFieldMissing)
			case rec.TypePath == nil:
				return nil, fmt.Errorf("module %q, descriptor %d: %w: type_path", module, i, ErrFieldMissing)
			}
			descs = append(descs, Descriptor{
				Fragment:  *rec.Fragment,
				Synthetic: *rec.Synthetic,
				TypePath:  rec.TypePath,
			})
		}
		out[module] = descs
	}
	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}
