package staging

import (
	"context"

	"github.com/yndnr/prefmirror/internal/setting"
)

// binding pairs one catalog key with the Snapshot field that mirrors it.
type binding struct {
	key setting.Descriptor

	applyDefault func(s *Snapshot)
	load         func(ctx context.Context, r setting.Reader, s *Snapshot)
	save         func(s *Snapshot, w setting.Writer) error
	format       func(s *Snapshot) string
	parse        func(s *Snapshot, raw string) error
	// detach gives s its own copy of any pointer-held value.
	detach func(s *Snapshot)
}

func bind[T any](k *setting.Key[T], field func(*Snapshot) *T) binding {
	return binding{
		key: k,
		applyDefault: func(s *Snapshot) {
			*field(s) = k.Default()
		},
		load: func(ctx context.Context, r setting.Reader, s *Snapshot) {
			*field(s) = k.Read(ctx, r)
		},
		save: func(s *Snapshot, w setting.Writer) error {
			return k.Write(*field(s), w)
		},
		format: func(s *Snapshot) string {
			return k.Format(*field(s))
		},
		parse: func(s *Snapshot, raw string) error {
			v, err := k.Parse(raw)
			if err != nil {
				return err
			}
			*field(s) = v
			return nil
		},
		detach: func(*Snapshot) {},
	}
}

func bindOptional[T any](k *setting.Key[*T], field func(*Snapshot) **T) binding {
	b := bind(k, field)
	b.detach = func(s *Snapshot) {
		if p := *field(s); p != nil {
			v := *p
			*field(s) = &v
		}
	}
	return b
}

// bindingFor finds the binding for a key name.
func bindingFor(name string) (binding, bool) {
	i, ok := tableIndex[name]
	if !ok {
		return binding{}, false
	}
	return table[i], true
}

var tableIndex = func() map[string]int {
	idx := make(map[string]int, len(table))
	for i, b := range table {
		idx[b.key.Name()] = i
	}
	return idx
}()
