package staging

import (
	"github.com/yndnr/prefmirror/internal/core/domain"
)

// Field is one setting as shown to a user.
type Field struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Value   string `json:"value" yaml:"value"`
	Default string `json:"default" yaml:"default"`
}

// Change records a field whose value differs between two snapshots.
type Change struct {
	Name string `json:"name" yaml:"name"`
	Old  string `json:"old" yaml:"old"`
	New  string `json:"new" yaml:"new"`
}

// Get returns the text form of the named field.
func (s *Snapshot) Get(name string) (string, error) {
	b, ok := bindingFor(name)
	if !ok {
		return "", domain.ErrUnknownSetting.WithDetails(name)
	}
	return b.format(s), nil
}

// Set parses raw as the named field's type and stores it. On error the
// field keeps its previous value.
func (s *Snapshot) Set(name, raw string) error {
	b, ok := bindingFor(name)
	if !ok {
		return domain.ErrUnknownSetting.WithDetails(name)
	}
	return b.parse(s, raw)
}

// ResetField sets the named field back to its key default.
func (s *Snapshot) ResetField(name string) error {
	b, ok := bindingFor(name)
	if !ok {
		return domain.ErrUnknownSetting.WithDetails(name)
	}
	b.applyDefault(s)
	return nil
}

// Fields lists every field in catalog order.
func (s *Snapshot) Fields() []Field {
	out := make([]Field, len(table))
	for i, b := range table {
		out[i] = Field{
			Name:    b.key.Name(),
			Type:    b.key.Type(),
			Value:   b.format(s),
			Default: b.key.DefaultString(),
		}
	}
	return out
}

// Diff lists the fields of other that differ from s, in catalog order.
func (s *Snapshot) Diff(other *Snapshot) []Change {
	var changes []Change
	for _, b := range table {
		oldVal, newVal := b.format(s), b.format(other)
		if oldVal != newVal {
			changes = append(changes, Change{Name: b.key.Name(), Old: oldVal, New: newVal})
		}
	}
	return changes
}

// Clone returns a deep copy.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	for _, b := range table {
		b.detach(&c)
	}
	return &c
}
