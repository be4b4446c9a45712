package staging

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/prefmirror/internal/setting"
	"github.com/yndnr/prefmirror/internal/storage/memory"
)

func TestSnapshot_FieldKeyCorrespondence(t *testing.T) {
	typ := reflect.TypeOf(Snapshot{})
	names := setting.Names()

	require.Equal(t, len(names), typ.NumField(), "one field per catalog key")
	require.Equal(t, len(names), len(table), "one binding per catalog key")

	seen := make(map[string]bool)
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("setting")

		require.NotEmpty(t, tag, "field %s has no setting tag", f.Name)
		assert.False(t, seen[tag], "key %s bound twice", tag)
		seen[tag] = true

		assert.Equal(t, names[i], tag, "field %s out of catalog order", f.Name)
		assert.Equal(t, tag, table[i].key.Name(), "binding %d", i)
		assert.Equal(t, tag, f.Tag.Get("yaml"))
		assert.Equal(t, tag, f.Tag.Get("json"))
	}
}

func TestSnapshot_BindingsTargetTheirField(t *testing.T) {
	typ := reflect.TypeOf(Snapshot{})
	base := WithDefaults()

	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("setting")
		t.Run(tag, func(t *testing.T) {
			s := base.Clone()
			mutateField(t, s, i)

			changes := base.Diff(s)
			require.Len(t, changes, 1)
			assert.Equal(t, tag, changes[0].Name)
		})
	}
}

func TestWithDefaults_Complete(t *testing.T) {
	s := WithDefaults()

	for _, f := range s.Fields() {
		assert.Equal(t, f.Default, f.Value, "field %s", f.Name)
	}
	assert.Equal(t, uint8(18), s.LogN)
	assert.Equal(t, uint64(30), s.CachePrunePeriodDays)
	assert.Equal(t, s.PrunePeriodDays, s.CachePrunePeriodDays)
	assert.Nil(t, s.PublicKey)
	assert.Nil(t, s.OverrideDPI)
	assert.Equal(t, "Default", s.ThemeVariant)
	assert.Equal(t, float32(1.0), s.MouseAcceleration)
}

func TestWithDefaults_Independent(t *testing.T) {
	a := WithDefaults()
	b := WithDefaults()
	a.MaxFPS = 144

	assert.Equal(t, uint32(12), b.MaxFPS)
}

func TestLoad_EmptyStoreIsDefaults(t *testing.T) {
	s := Load(context.Background(), memory.New())
	assert.Equal(t, WithDefaults(), s)
}

func TestLoad_CorruptValueFallsBack(t *testing.T) {
	store := memory.New()
	txn, err := store.BeginWrite()
	require.NoError(t, err)
	require.NoError(t, txn.Set([]byte("setting/max_relays"), []byte{0xff, 0xff}))
	require.NoError(t, setting.LogN.Write(12, txn))
	require.NoError(t, txn.Commit())

	s := Load(context.Background(), store)

	assert.Equal(t, uint8(50), s.MaxRelays)
	assert.Equal(t, uint8(12), s.LogN)
}
