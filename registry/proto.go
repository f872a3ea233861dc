package registry

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	protoparser "github.com/yoheimuta/go-protoparser/v4"
	"github.com/yoheimuta/go-protoparser/v4/parser"

	"github.com/protosun/protosun/schema"
	"github.com/protosun/protosun/wire"
)

// LoadSchema parses protoPath, a .proto file or a directory scanned
// recursively, and registers every message and enum found. Names are
// qualified with the file's package.
func (r *Registry) LoadSchema(protoPath string) error {
	info, err := os.Stat(protoPath)
	if err != nil {
		return errors.Wrap(err, "load schema")
	}
	if !info.IsDir() {
		return r.loadProtoFile(protoPath)
	}
	return filepath.WalkDir(protoPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".proto") {
			return nil
		}
		return r.loadProtoFile(path)
	})
}

// ParseSchema parses protoPath without registering, returning the message
// descriptors found. Use with Validate to cross-check a running binary
// against the .proto files it claims to implement.
func (r *Registry) ParseSchema(protoPath string) ([]*schema.Message, error) {
	content, err := os.ReadFile(protoPath)
	if err != nil {
		return nil, errors.Wrap(err, "parse schema")
	}
	proto, err := protoparser.Parse(bytes.NewBuffer(content))
	if err != nil {
		return nil, errors.Wrapf(err, "parse schema %s", protoPath)
	}
	msgs, _, err := r.convert(proto)
	return msgs, err
}

func (r *Registry) loadProtoFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "load proto file")
	}
	proto, err := protoparser.Parse(bytes.NewBuffer(content))
	if err != nil {
		return errors.Wrapf(err, "parse %s", path)
	}
	msgs, enums, err := r.convert(proto)
	if err != nil {
		return errors.Wrapf(err, "convert %s", path)
	}
	for _, e := range enums {
		if err := r.RegisterEnum(e); err != nil {
			return err
		}
	}
	for _, m := range msgs {
		if err := r.RegisterMessage(m); err != nil {
			return err
		}
	}
	level.Debug(r.logger).Log(
		"msg", "loaded proto file",
		"path", path,
		"messages", len(msgs),
		"enums", len(enums),
	)
	return nil
}

// convert lowers a parsed proto AST into descriptors. Nested messages and
// enums are qualified with their enclosing scope, dot separated.
func (r *Registry) convert(proto *parser.Proto) ([]*schema.Message, []*schema.Enum, error) {
	pkg := ""
	for _, body := range proto.ProtoBody {
		if p, ok := body.(*parser.Package); ok {
			pkg = p.Name
		}
	}

	var msgs []*schema.Message
	var enums []*schema.Enum
	// Type names collect first so field type resolution can tell enum
	// references from message references within the same file, at every
	// nesting level.
	names := make(map[string]wire.KindClass)
	var collectNames func(prefix string, body []parser.Visitee)
	collectNames = func(prefix string, body []parser.Visitee) {
		for _, v := range body {
			switch b := v.(type) {
			case *parser.Enum:
				names[qualify(prefix, b.EnumName)] = wire.ClassSimpleEnum
			case *parser.Message:
				qualified := qualify(prefix, b.MessageName)
				names[qualified] = wire.ClassMessage
				collectNames(qualified, b.MessageBody)
			}
		}
	}
	collectNames(pkg, proto.ProtoBody)

	var walk func(prefix string, body []parser.Visitee) error
	walk = func(prefix string, body []parser.Visitee) error {
		for _, v := range body {
			switch b := v.(type) {
			case *parser.Message:
				name := qualify(prefix, b.MessageName)
				m, err := r.convertMessage(name, b, names)
				if err != nil {
					return err
				}
				msgs = append(msgs, m)
				if err := walk(name, b.MessageBody); err != nil {
					return err
				}
			case *parser.Enum:
				e, err := convertEnum(qualify(prefix, b.EnumName), b)
				if err != nil {
					return err
				}
				enums = append(enums, e)
			}
		}
		return nil
	}
	if err := walk(pkg, proto.ProtoBody); err != nil {
		return nil, nil, err
	}
	return msgs, enums, nil
}

func (r *Registry) convertMessage(name string, m *parser.Message, names map[string]wire.KindClass) (*schema.Message, error) {
	out := &schema.Message{Name: name}
	for _, v := range m.MessageBody {
		switch f := v.(type) {
		case *parser.Field:
			tag, err := parseTag(f.FieldNumber)
			if err != nil {
				return nil, errors.Wrapf(err, "message %s: field %s", name, f.FieldName)
			}
			field := schema.Field{
				Name: f.FieldName,
				Tag:  tag,
				Kind: r.kindOf(f.Type, names, name),
			}
			if field.Kind.Class == wire.ClassMessage || field.Kind.Class == wire.ClassSimpleEnum {
				field.TypeName = f.Type
			}
			switch {
			case f.IsRepeated:
				field.Label = schema.LabelRepeated
				field.Kind = wire.KindRepeated(field.Kind)
			case f.IsOptional:
				field.Label = schema.LabelOptional
			default:
				field.Label = schema.LabelSingular
			}
			out.Fields = append(out.Fields, field)
		case *parser.MapField:
			tag, err := parseTag(f.FieldNumber)
			if err != nil {
				return nil, errors.Wrapf(err, "message %s: map field %s", name, f.MapName)
			}
			out.Fields = append(out.Fields, schema.Field{
				Name:      f.MapName,
				Tag:       tag,
				Kind:      wire.KindRepeated(wire.KindMessage),
				Label:     schema.LabelMap,
				KeyKind:   r.kindOf(f.KeyType, names, name),
				ValueKind: r.kindOf(f.Type, names, name),
			})
		}
	}
	return out, nil
}

func convertEnum(name string, e *parser.Enum) (*schema.Enum, error) {
	out := &schema.Enum{Name: name, Values: make(map[string]int32)}
	for _, v := range e.EnumBody {
		f, ok := v.(*parser.EnumField)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(f.Number, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "enum %s: value %s", name, f.Ident)
		}
		out.Values[f.Ident] = int32(n)
	}
	return out, nil
}

var scalarKinds = map[string]wire.Kind{
	"bool":     wire.KindPrimitive(wire.PrimBool),
	"int32":    wire.KindPrimitive(wire.PrimInt32),
	"int64":    wire.KindPrimitive(wire.PrimInt64),
	"uint32":   wire.KindPrimitive(wire.PrimUint32),
	"uint64":   wire.KindPrimitive(wire.PrimUint64),
	"sint32":   wire.KindPrimitive(wire.PrimSint32),
	"sint64":   wire.KindPrimitive(wire.PrimSint64),
	"fixed32":  wire.KindPrimitive(wire.PrimFixed32),
	"fixed64":  wire.KindPrimitive(wire.PrimFixed64),
	"sfixed32": wire.KindPrimitive(wire.PrimSfixed32),
	"sfixed64": wire.KindPrimitive(wire.PrimSfixed64),
	"float":    wire.KindPrimitive(wire.PrimFloat),
	"double":   wire.KindPrimitive(wire.PrimDouble),
	"string":   wire.KindString,
	"bytes":    wire.KindBytes,
}

// kindOf resolves a field type name: scalar keyword, enum reference within
// the current file or the registry, otherwise a message reference. A leading
// dot marks a fully qualified name; relative references resolve from the
// innermost enclosing scope outward, with the bare name tried last, so an
// inner declaration shadows an outer one of the same name.
func (r *Registry) kindOf(typeName string, names map[string]wire.KindClass, scope string) wire.Kind {
	if k, ok := scalarKinds[typeName]; ok {
		return k
	}
	var candidates []string
	if strings.HasPrefix(typeName, ".") {
		candidates = []string{strings.TrimPrefix(typeName, ".")}
	} else {
		parts := strings.Split(scope, ".")
		for len(parts) > 0 && parts[0] != "" {
			candidates = append(candidates, strings.Join(parts, ".")+"."+typeName)
			parts = parts[:len(parts)-1]
		}
		candidates = append(candidates, typeName)
	}
	for _, c := range candidates {
		if class, ok := names[c]; ok {
			if class == wire.ClassSimpleEnum {
				return wire.KindSimpleEnum
			}
			return wire.KindMessage
		}
		if _, ok := r.Enum(c); ok {
			return wire.KindSimpleEnum
		}
		if _, ok := r.Message(c); ok {
			return wire.KindMessage
		}
	}
	return wire.KindMessage
}

func parseTag(number string) (uint32, error) {
	n, err := strconv.ParseUint(number, 10, 32)
	if err != nil {
		return 0, errors.Wrap(err, "parse field number")
	}
	tag := uint32(n)
	if tag < wire.MinTag || tag > wire.MaxTag {
		return 0, errors.Errorf("field number %d out of range", tag)
	}
	return tag, nil
}

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
