package uplink

import (
	"strings"
	"testing"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValueKeepsKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		sample interface{}
		expect Kind
	}{
		{int16(-7), KindInt16},
		{int32(1 << 20), KindInt32},
		{int64(-1 << 40), KindInt64},
		{float32(0.25), KindFloat32},
		{float64(3.14), KindFloat64},
		{true, KindBool},
		{"running", KindString},
		{Enum(3), KindEnum},
	}
	for _, c := range cases {
		c := c
		t.Run(c.expect.String(), func(t *testing.T) {
			v, err := NewValue(c.sample)
			require.NoError(t, err)
			assert.Equal(t, c.expect, Kind(v.Kind))
			assert.Equal(t, c.sample, v.Native())
		})
	}

	_, err := NewValue(uint8(1))
	assert.Error(t, err)
}

func TestSnapshotWire(t *testing.T) {
	t.Parallel()

	ts := time.Unix(1700000000, 0)
	s, err := NewSnapshot(ts, 42, map[Address]interface{}{
		{"meter0", "ActivePower"}: int32(1500),
		{"ess0", "State"}:         Enum(2),
	})
	require.NoError(t, err)
	b, err := proto.Marshal(s)
	require.NoError(t, err)

	var s2 Snapshot
	require.NoError(t, proto.Unmarshal(b, &s2))
	assert.Equal(t, int64(1700000000000), s2.Time)
	assert.Equal(t, ts, s2.Timestamp())
	assert.Equal(t, int32(42), s2.DeviceId)
	require.Len(t, s2.Values, 2)
	assert.Equal(t, int32(1500), s2.Values["meter0/ActivePower"].Native())
	assert.Equal(t, Enum(2), s2.Values["ess0/State"].Native())
}

func TestValueKindMatchesKind(t *testing.T) {
	t.Parallel()

	for k := KindInvalid; k < kindEnd; k++ {
		assert.Equal(t, k.String(), strings.ToLower(ValueKind(k).String()))
	}
	assert.Equal(t, "uplink.Snapshot", string((&Snapshot{}).ProtoReflect().Descriptor().FullName()))

	v, err := NewValue(float32(1.5))
	require.NoError(t, err)
	assert.Equal(t, ValueKind_Float32, v.GetKind())
	// kind=4 float=1.5
	b, err := proto.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x08, 0x04, 0x19, 0, 0, 0, 0, 0, 0, 0xf8, 0x3f}, b)
}

func TestAddress(t *testing.T) {
	t.Parallel()

	a, err := ParseAddress("meter0/ActivePower")
	require.NoError(t, err)
	assert.Equal(t, Address{"meter0", "ActivePower"}, a)
	assert.Equal(t, "meter0/ActivePower", a.String())

	for _, bad := range []string{"", "meter0", "/x", "meter0/"} {
		_, err := ParseAddress(bad)
		assert.Error(t, err, bad)
	}

	k, ok := ParseKind("float32")
	assert.True(t, ok)
	assert.Equal(t, KindFloat32, k)
	_, ok = ParseKind("invalid")
	assert.False(t, ok)
	assert.True(t, KindEnum.Valid())
	assert.True(t, KindFloat32.Numeric())
	assert.False(t, KindEnum.Numeric())
	assert.False(t, Kind(99).Valid())
	assert.Equal(t, "kind(99)", Kind(99).String())
}
