package setting

import (
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/yndnr/prefmirror/internal/core/domain"
)

// Codec converts a value of type T to and from its stored bytes and its
// text form.
type Codec[T any] interface {
	// Type names the value type for listings, e.g. "uint8".
	Type() string
	Encode(v T) ([]byte, error)
	Decode(b []byte) (T, error)
	Parse(s string) (T, error)
	Format(v T) string
}

// Optional presence tags.
const (
	tagAbsent  byte = 0
	tagPresent byte = 1
)

func invalidValue(typ, s string, cause error) error {
	err := domain.ErrInvalidValue.WithDetails(fmt.Sprintf("%q is not a valid %s", s, typ))
	if cause != nil {
		err = err.WithCause(cause)
	}
	return err
}

// boolCodec

type boolCodec struct{}

// Bool is the codec for bool settings.
var Bool Codec[bool] = boolCodec{}

func (boolCodec) Type() string { return "bool" }

func (boolCodec) Encode(v bool) ([]byte, error) {
	return proto.Marshal(wrapperspb.Bool(v))
}

func (boolCodec) Decode(b []byte) (bool, error) {
	var m wrapperspb.BoolValue
	if err := proto.Unmarshal(b, &m); err != nil {
		return false, fmt.Errorf("decode bool: %w", err)
	}
	return m.GetValue(), nil
}

func (c boolCodec) Parse(s string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, invalidValue(c.Type(), s, err)
	}
	return v, nil
}

func (boolCodec) Format(v bool) string { return strconv.FormatBool(v) }

// unsignedCodec

type unsigned interface {
	~uint8 | ~uint32 | ~uint64 | ~uint
}

type unsignedCodec[T unsigned] struct {
	name string
	bits int
}

// Unsigned integer codecs. All widths share the UInt64Value wire form and
// reject stored values that overflow the target width.
var (
	Uint8  Codec[uint8]  = unsignedCodec[uint8]{name: "uint8", bits: 8}
	Uint32 Codec[uint32] = unsignedCodec[uint32]{name: "uint32", bits: 32}
	Uint64 Codec[uint64] = unsignedCodec[uint64]{name: "uint64", bits: 64}
	Uint   Codec[uint]   = unsignedCodec[uint]{name: "uint", bits: strconv.IntSize}
)

func (c unsignedCodec[T]) Type() string { return c.name }

func (c unsignedCodec[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(wrapperspb.UInt64(uint64(v)))
}

func (c unsignedCodec[T]) Decode(b []byte) (T, error) {
	var m wrapperspb.UInt64Value
	if err := proto.Unmarshal(b, &m); err != nil {
		return 0, fmt.Errorf("decode %s: %w", c.name, err)
	}
	v := m.GetValue()
	if c.bits < 64 && v>>c.bits != 0 {
		return 0, fmt.Errorf("decode %s: value %d out of range", c.name, v)
	}
	return T(v), nil
}

func (c unsignedCodec[T]) Parse(s string) (T, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, c.bits)
	if err != nil {
		return 0, invalidValue(c.name, s, err)
	}
	return T(v), nil
}

func (c unsignedCodec[T]) Format(v T) string {
	return strconv.FormatUint(uint64(v), 10)
}

// float32Codec

type float32Codec struct{}

// Float32 is the codec for float32 settings.
var Float32 Codec[float32] = float32Codec{}

func (float32Codec) Type() string { return "float32" }

func (float32Codec) Encode(v float32) ([]byte, error) {
	return proto.Marshal(wrapperspb.Float(v))
}

func (float32Codec) Decode(b []byte) (float32, error) {
	var m wrapperspb.FloatValue
	if err := proto.Unmarshal(b, &m); err != nil {
		return 0, fmt.Errorf("decode float32: %w", err)
	}
	return m.GetValue(), nil
}

func (c float32Codec) Parse(s string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, invalidValue(c.Type(), s, err)
	}
	return float32(v), nil
}

func (float32Codec) Format(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// stringCodec

type stringCodec struct{}

// String is the codec for string settings.
var String Codec[string] = stringCodec{}

func (stringCodec) Type() string { return "string" }

func (stringCodec) Encode(v string) ([]byte, error) {
	return proto.Marshal(wrapperspb.String(v))
}

func (stringCodec) Decode(b []byte) (string, error) {
	var m wrapperspb.StringValue
	if err := proto.Unmarshal(b, &m); err != nil {
		return "", fmt.Errorf("decode string: %w", err)
	}
	return m.GetValue(), nil
}

func (stringCodec) Parse(s string) (string, error) { return s, nil }

func (stringCodec) Format(v string) string { return v }

// publicKeyCodec

type publicKeyCodec struct{}

// PublicKeyValue is the codec for public key settings.
var PublicKeyValue Codec[domain.PublicKey] = publicKeyCodec{}

func (publicKeyCodec) Type() string { return "public_key" }

func (publicKeyCodec) Encode(v domain.PublicKey) ([]byte, error) {
	return proto.Marshal(wrapperspb.Bytes(v[:]))
}

func (publicKeyCodec) Decode(b []byte) (domain.PublicKey, error) {
	var m wrapperspb.BytesValue
	if err := proto.Unmarshal(b, &m); err != nil {
		return domain.PublicKey{}, fmt.Errorf("decode public_key: %w", err)
	}
	return domain.PublicKeyFromBytes(m.GetValue())
}

func (publicKeyCodec) Parse(s string) (domain.PublicKey, error) {
	return domain.ParsePublicKey(s)
}

func (publicKeyCodec) Format(v domain.PublicKey) string { return v.String() }

// optionalCodec

type optionalCodec[T any] struct {
	inner Codec[T]
}

// Optional wraps inner so a nil pointer means "not set".
//
// Stored form is a presence byte, followed by the inner encoding when set.
// Text form "none" (or empty) means not set.
func Optional[T any](inner Codec[T]) Codec[*T] {
	return optionalCodec[T]{inner: inner}
}

func (c optionalCodec[T]) Type() string { return "optional " + c.inner.Type() }

func (c optionalCodec[T]) Encode(v *T) ([]byte, error) {
	if v == nil {
		return []byte{tagAbsent}, nil
	}
	b, err := c.inner.Encode(*v)
	if err != nil {
		return nil, err
	}
	return append([]byte{tagPresent}, b...), nil
}

func (c optionalCodec[T]) Decode(b []byte) (*T, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("decode %s: missing presence tag", c.Type())
	}
	switch b[0] {
	case tagAbsent:
		return nil, nil
	case tagPresent:
		v, err := c.inner.Decode(b[1:])
		if err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, fmt.Errorf("decode %s: bad presence tag %d", c.Type(), b[0])
	}
}

func (c optionalCodec[T]) Parse(s string) (*T, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.EqualFold(trimmed, "none") {
		return nil, nil
	}
	v, err := c.inner.Parse(trimmed)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c optionalCodec[T]) Format(v *T) string {
	if v == nil {
		return "none"
	}
	return c.inner.Format(*v)
}
