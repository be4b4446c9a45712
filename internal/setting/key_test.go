package setting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/prefmirror/internal/storage"
	"github.com/yndnr/prefmirror/internal/storage/memory"
)

type failingReader struct{ err error }

func (r failingReader) Get(context.Context, []byte) ([]byte, error) {
	return nil, r.err
}

type rawReader map[string][]byte

func (r rawReader) Get(_ context.Context, key []byte) ([]byte, error) {
	v, ok := r[string(key)]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return v, nil
}

type rejectingWriter struct{}

func (rejectingWriter) Set([]byte, []byte) error { return errors.New("disk full") }

func TestKey_ReadAbsentReturnsDefault(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	assert.Equal(t, uint8(18), LogN.Read(ctx, store))
	assert.Equal(t, "CatmullRom", ImageResizeAlgorithm.Read(ctx, store))
	assert.Nil(t, OverrideDPI.Read(ctx, store))
}

func TestKey_WriteThenRead(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	txn, err := store.BeginWrite()
	require.NoError(t, err)
	dpi := uint32(192)
	require.NoError(t, LogN.Write(20, txn))
	require.NoError(t, Offline.Write(true, txn))
	require.NoError(t, OverrideDPI.Write(&dpi, txn))
	require.NoError(t, ThemeVariant.Write("Classic", txn))
	require.NoError(t, txn.Commit())

	assert.Equal(t, uint8(20), LogN.Read(ctx, store))
	assert.True(t, Offline.Read(ctx, store))
	assert.Equal(t, "Classic", ThemeVariant.Read(ctx, store))
	got := OverrideDPI.Read(ctx, store)
	require.NotNil(t, got)
	assert.Equal(t, dpi, *got)
}

func TestKey_WriteUncommittedInvisible(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	txn, err := store.BeginWrite()
	require.NoError(t, err)
	require.NoError(t, MaxFPS.Write(60, txn))
	txn.Discard()

	assert.Equal(t, uint32(12), MaxFPS.Read(ctx, store))
}

func TestKey_ReadUndecodableReturnsDefault(t *testing.T) {
	r := rawReader{
		"setting/max_relays":   {0xff, 0xff, 0xff},
		"setting/override_dpi": {9},
	}
	ctx := context.Background()

	assert.Equal(t, uint8(50), MaxRelays.Read(ctx, r))
	assert.Nil(t, OverrideDPI.Read(ctx, r))
}

func TestKey_ReadErrorReturnsDefault(t *testing.T) {
	r := failingReader{err: storage.ErrClosed}
	assert.Equal(t, uint64(900), FutureAllowanceSecs.Read(context.Background(), r))
}

func TestKey_WriteError(t *testing.T) {
	err := Reactions.Write(false, rejectingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reactions")
	assert.Contains(t, err.Error(), "disk full")
}

func TestKey_ParseFormat(t *testing.T) {
	v, err := NumRelaysPerPerson.Parse("4")
	require.NoError(t, err)
	assert.Equal(t, uint8(4), v)
	assert.Equal(t, "4", NumRelaysPerPerson.Format(v))
}
