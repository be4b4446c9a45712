package staging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/prefmirror/internal/core/domain"
)

func TestSnapshot_GetSet(t *testing.T) {
	s := WithDefaults()

	require.NoError(t, s.Set("max_fps", "60"))
	assert.Equal(t, uint32(60), s.MaxFPS)

	got, err := s.Get("max_fps")
	require.NoError(t, err)
	assert.Equal(t, "60", got)

	require.NoError(t, s.Set("override_dpi", "144"))
	require.NotNil(t, s.OverrideDPI)
	assert.Equal(t, uint32(144), *s.OverrideDPI)

	require.NoError(t, s.Set("override_dpi", "none"))
	assert.Nil(t, s.OverrideDPI)

	require.NoError(t, s.Set("public_key", "3bf0c63fcb93463407af97a5e5ee64fa883d107ef9e558472c4eb9aaaefa459d"))
	require.NotNil(t, s.PublicKey)
}

func TestSnapshot_SetErrors(t *testing.T) {
	s := WithDefaults()

	err := s.Set("no_such_key", "1")
	assert.ErrorIs(t, err, domain.ErrUnknownSetting)

	err = s.Set("log_n", "300")
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
	assert.Equal(t, uint8(18), s.LogN, "failed Set must leave the field alone")

	err = s.Set("public_key", "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidPublicKey)

	_, err = s.Get("no_such_key")
	assert.ErrorIs(t, err, domain.ErrUnknownSetting)
}

func TestSnapshot_ResetField(t *testing.T) {
	s := WithDefaults()
	s.Offline = true
	s.ThemeVariant = "Classic"

	require.NoError(t, s.ResetField("offline"))
	assert.False(t, s.Offline)
	assert.Equal(t, "Classic", s.ThemeVariant)

	assert.ErrorIs(t, s.ResetField("bogus"), domain.ErrUnknownSetting)
}

func TestSnapshot_Diff(t *testing.T) {
	a := WithDefaults()
	b := a.Clone()
	assert.Empty(t, a.Diff(b))

	b.Offline = true
	b.LoadMoreCount = 70

	changes := a.Diff(b)
	assert.Equal(t, []Change{
		{Name: "offline", Old: "false", New: "true"},
		{Name: "load_more_count", Old: "35", New: "70"},
	}, changes)
}

func TestSnapshot_Clone(t *testing.T) {
	a := WithDefaults()
	dpi := uint32(120)
	a.OverrideDPI = &dpi

	b := a.Clone()
	assert.Equal(t, a, b)

	*b.OverrideDPI = 240
	b.LogN = 1

	assert.Equal(t, uint32(120), *a.OverrideDPI, "clone must not share optional values")
	assert.Equal(t, uint8(18), a.LogN)
}

func TestSnapshot_Fields(t *testing.T) {
	fields := WithDefaults().Fields()

	require.Len(t, fields, len(table))
	assert.Equal(t, Field{Name: "public_key", Type: "optional public_key", Value: "none", Default: "none"}, fields[0])
	assert.Equal(t, "blossom_servers", fields[len(fields)-1].Name)
}
