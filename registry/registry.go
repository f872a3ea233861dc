// Package registry keeps the process-level table of message and enum
// descriptors. Generated code registers its descriptors at init time;
// tooling loads .proto files and cross-checks them against what the
// binary actually registered.
package registry

import (
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/protosun/protosun/schema"
)

// Registry stores descriptors by fully qualified name. Safe for concurrent
// registration and lookup.
type Registry struct {
	mu       sync.RWMutex
	messages map[string]*schema.Message
	enums    map[string]*schema.Enum
	logger   log.Logger
}

// NewRegistry returns an empty registry logging through logger; a nil
// logger disables logging.
func NewRegistry(logger log.Logger) *Registry {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Registry{
		messages: make(map[string]*schema.Message),
		enums:    make(map[string]*schema.Enum),
		logger:   logger,
	}
}

// Default is the process-level registry generated code registers into.
var Default = NewRegistry(nil)

// RegisterMessage validates and stores a message descriptor. Registering
// the same name twice is an error.
func (r *Registry) RegisterMessage(m *schema.Message) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "register message")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.messages[m.Name]; ok {
		return errors.Errorf("register message: %s already registered", m.Name)
	}
	r.messages[m.Name] = m
	return nil
}

// RegisterEnum validates and stores an enum descriptor.
func (r *Registry) RegisterEnum(e *schema.Enum) error {
	if err := e.Validate(); err != nil {
		return errors.Wrap(err, "register enum")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.enums[e.Name]; ok {
		return errors.Errorf("register enum: %s already registered", e.Name)
	}
	r.enums[e.Name] = e
	return nil
}

// Message looks up a message descriptor by fully qualified name.
func (r *Registry) Message(name string) (*schema.Message, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.messages[name]
	return m, ok
}

// Enum looks up an enum descriptor by fully qualified name.
func (r *Registry) Enum(name string) (*schema.Enum, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.enums[name]
	return e, ok
}

// Messages returns the registered message names.
func (r *Registry) Messages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.messages))
	for name := range r.messages {
		names = append(names, name)
	}
	return names
}

// Validate cross-checks a registered message descriptor against a parsed
// one of the same name: every parsed field must exist with the same tag,
// kind class and label. Extra registered fields only warn; the binary may
// be ahead of the .proto on disk.
func (r *Registry) Validate(parsed *schema.Message) error {
	registered, ok := r.Message(parsed.Name)
	if !ok {
		return errors.Errorf("validate: message %s not registered", parsed.Name)
	}
	for _, pf := range parsed.Fields {
		rf := registered.FieldByTag(pf.Tag)
		if rf == nil {
			return errors.Errorf("validate: message %s: field %s (tag %d) missing from registered descriptor",
				parsed.Name, pf.Name, pf.Tag)
		}
		if rf.Kind.Class != pf.Kind.Class {
			return errors.Errorf("validate: message %s: field %s: kind mismatch: registered %v, parsed %v",
				parsed.Name, pf.Name, rf.Kind, pf.Kind)
		}
		if rf.Label != pf.Label {
			return errors.Errorf("validate: message %s: field %s: label mismatch: registered %v, parsed %v",
				parsed.Name, pf.Name, rf.Label, pf.Label)
		}
	}
	for _, rf := range registered.Fields {
		if parsed.FieldByTag(rf.Tag) == nil {
			level.Warn(r.logger).Log(
				"msg", "registered field absent from parsed schema",
				"message", parsed.Name,
				"field", rf.Name,
				"tag", rf.Tag,
			)
		}
	}
	return nil
}
