// Package schema holds the static reflection metadata a code generator
// emits per message type: field names, tags, kinds and labels. The wire
// engine never consults it; tooling and the registry do.
package schema

import (
	"github.com/pkg/errors"

	"github.com/protosun/protosun/wire"
)

// Label describes a field's cardinality.
type Label int8

const (
	LabelSingular Label = iota // implicit presence
	LabelOptional              // explicit presence
	LabelRepeated
	LabelMap
)

// String returns the proto keyword for the label.
func (l Label) String() string {
	switch l {
	case LabelSingular:
		return "singular"
	case LabelOptional:
		return "optional"
	case LabelRepeated:
		return "repeated"
	case LabelMap:
		return "map"
	default:
		return "unknown"
	}
}

// Field describes one declared message field.
type Field struct {
	Name  string
	Tag   uint32
	Kind  wire.Kind
	Label Label

	// TypeName names the message or enum type for Message and SimpleEnum
	// kinds, empty otherwise.
	TypeName string

	// KeyKind and ValueKind are set for map fields only.
	KeyKind   wire.Kind
	ValueKind wire.Kind
}

// Packed reports whether the field uses the packed repeated wire form.
func (f Field) Packed() bool {
	return f.Label == LabelRepeated && f.Kind.Packable()
}

// Message describes one message type.
type Message struct {
	Name   string
	Fields []Field
}

// FieldByTag returns the field declared with tag, or nil.
func (m *Message) FieldByTag(tag uint32) *Field {
	for i := range m.Fields {
		if m.Fields[i].Tag == tag {
			return &m.Fields[i]
		}
	}
	return nil
}

// FieldByName returns the field declared with name, or nil.
func (m *Message) FieldByName(name string) *Field {
	for i := range m.Fields {
		if m.Fields[i].Name == name {
			return &m.Fields[i]
		}
	}
	return nil
}

// Validate checks tag validity and uniqueness across the message's fields.
func (m *Message) Validate() error {
	seen := make(map[uint32]string, len(m.Fields))
	for _, f := range m.Fields {
		if f.Tag < wire.MinTag || f.Tag > wire.MaxTag {
			return errors.Errorf("message %s: field %s: tag %d out of range", m.Name, f.Name, f.Tag)
		}
		if prev, ok := seen[f.Tag]; ok {
			return errors.Errorf("message %s: duplicate tag %d on fields %s and %s", m.Name, f.Tag, prev, f.Name)
		}
		seen[f.Tag] = f.Name
	}
	return nil
}

// Enum describes one enum type and its discriminants.
type Enum struct {
	Name   string
	Values map[string]int32
}

// Valid reports whether v names a declared discriminant.
func (e *Enum) Valid(v int32) bool {
	for _, d := range e.Values {
		if d == v {
			return true
		}
	}
	return false
}

// Validate checks that the zero discriminant exists, which protobuf
// requires so the type default is always representable.
func (e *Enum) Validate() error {
	for _, d := range e.Values {
		if d == 0 {
			return nil
		}
	}
	return errors.Errorf("enum %s: no zero discriminant", e.Name)
}
