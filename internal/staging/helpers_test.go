package staging

import (
	"errors"
	"reflect"
	"testing"

	"github.com/yndnr/prefmirror/internal/core/domain"
	"github.com/yndnr/prefmirror/internal/storage"
	"github.com/yndnr/prefmirror/internal/storage/memory"
)

var errInjected = errors.New("injected failure")

// faultyStore wraps a memory store and fails on demand.
type faultyStore struct {
	*memory.Store

	failBegin  bool
	failSetAt  int // 1-based; 0 disables
	failCommit bool

	sets int
}

func (f *faultyStore) BeginWrite() (storage.Txn, error) {
	if f.failBegin {
		return nil, errInjected
	}
	txn, err := f.Store.BeginWrite()
	if err != nil {
		return nil, err
	}
	return &faultyTxn{Txn: txn, store: f}, nil
}

type faultyTxn struct {
	storage.Txn
	store *faultyStore
}

func (t *faultyTxn) Set(key, value []byte) error {
	t.store.sets++
	if t.store.failSetAt > 0 && t.store.sets == t.store.failSetAt {
		return errInjected
	}
	return t.Txn.Set(key, value)
}

func (t *faultyTxn) Commit() error {
	if t.store.failCommit {
		return errInjected
	}
	return t.Txn.Commit()
}

// mutateField sets field i of s to a value different from its current one.
func mutateField(t *testing.T, s *Snapshot, i int) {
	t.Helper()

	f := reflect.ValueOf(s).Elem().Field(i)
	switch f.Kind() {
	case reflect.Bool:
		f.SetBool(!f.Bool())
	case reflect.Uint8, reflect.Uint32, reflect.Uint64, reflect.Uint:
		f.SetUint(f.Uint() + 1)
	case reflect.Float32:
		f.SetFloat(f.Float() + 0.5)
	case reflect.String:
		f.SetString(f.String() + "x")
	case reflect.Pointer:
		if !f.IsNil() {
			f.Set(reflect.Zero(f.Type()))
			return
		}
		v := reflect.New(f.Type().Elem())
		if pk, ok := v.Interface().(*domain.PublicKey); ok {
			pk[0] = 0xab
		} else {
			v.Elem().SetUint(96)
		}
		f.Set(v)
	default:
		t.Fatalf("field %s has unsupported kind %s", reflect.TypeOf(*s).Field(i).Name, f.Kind())
	}
}

// edited returns a snapshot where every field differs from its default.
func edited(t *testing.T) *Snapshot {
	t.Helper()

	s := WithDefaults()
	for i := 0; i < reflect.TypeOf(*s).NumField(); i++ {
		mutateField(t, s, i)
	}
	return s
}
