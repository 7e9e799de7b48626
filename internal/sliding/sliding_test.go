package sliding

import (
	"fmt"
	"math"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/uplink/helpers"
	"github.com/temoto/uplink/uplink"
)

// fold over samples as sliding value should, result in int64/float64
func expectFold(fold Fold, samples []float64) float64 {
	if fold == FoldLast {
		return samples[len(samples)-1]
	}
	sum := 0.0
	for _, x := range samples {
		sum += x
	}
	return sum / float64(len(samples))
}

func TestNumericFold(t *testing.T) {
	t.Parallel()

	type Case struct {
		kind uplink.Kind
		make func(r float64) interface{}
		back func(x interface{}) float64
	}
	cases := []Case{
		{uplink.KindInt16, func(r float64) interface{} { return int16(r) }, func(x interface{}) float64 { return float64(x.(int16)) }},
		{uplink.KindInt32, func(r float64) interface{} { return int32(r) }, func(x interface{}) float64 { return float64(x.(int32)) }},
		{uplink.KindInt64, func(r float64) interface{} { return int64(r) }, func(x interface{}) float64 { return float64(x.(int64)) }},
		{uplink.KindFloat32, func(r float64) interface{} { return float32(r) }, func(x interface{}) float64 { return float64(x.(float32)) }},
		{uplink.KindFloat64, func(r float64) interface{} { return r }, func(x interface{}) float64 { return x.(float64) }},
	}
	for _, c := range cases {
		for _, fold := range []Fold{FoldLast, FoldMean} {
			c, fold := c, fold
			t.Run(fmt.Sprintf("%s/%s", c.kind, fold), func(t *testing.T) {
				t.Parallel()
				rand := helpers.RandUnix()
				v, err := New(c.kind, fold)
				require.NoError(t, err)
				assert.Equal(t, c.kind, v.Kind())
				_, ok := v.Current()
				assert.False(t, ok)

				for window := 0; window < 5; window++ {
					n := 1 + rand.Intn(20)
					samples := make([]float64, n)
					for i := range samples {
						x := c.make(float64(rand.Intn(2000) - 1000))
						samples[i] = c.back(x)
						v.Add(x)
					}
					current, ok := v.Current()
					require.True(t, ok)
					expect := expectFold(fold, samples)
					if c.kind == uplink.KindFloat32 || c.kind == uplink.KindFloat64 {
						assert.InDelta(t, expect, c.back(current), 1e-3)
					} else {
						assert.Equal(t, math.Trunc(expect), c.back(current))
					}
					v.closeWindow()
					// empty window keeps representative
					again, _ := v.Current()
					assert.Equal(t, current, again)
				}
			})
		}
	}
}

func TestChanged(t *testing.T) {
	t.Parallel()

	v, err := New(uplink.KindInt32, FoldLast)
	require.NoError(t, err)
	_, ok := v.Changed()
	assert.False(t, ok, "no samples, nothing changed")

	v.Add(int32(5))
	x, ok := v.Changed()
	require.True(t, ok)
	assert.Equal(t, int32(5), x)
	_, ok = v.Changed()
	assert.False(t, ok, "change consumed")

	v.Add(int32(5))
	_, ok = v.Changed()
	assert.False(t, ok, "same as baseline")

	v.Add(int32(6))
	v.Add(int32(5))
	_, ok = v.Changed()
	assert.False(t, ok, "last sample equals baseline")

	v.Add(int32(7))
	cur, _ := v.Current()
	assert.Equal(t, int32(7), cur)
	x, ok = v.Changed()
	require.True(t, ok)
	assert.Equal(t, int32(7), x)
}

func TestChangedNaN(t *testing.T) {
	t.Parallel()

	v, err := New(uplink.KindFloat64, FoldLast)
	require.NoError(t, err)
	v.Add(math.NaN())
	_, ok := v.Changed()
	assert.True(t, ok)
	v.Add(math.NaN())
	_, ok = v.Changed()
	assert.False(t, ok)
}

// float64 mean of float32 samples must be compared as reported float32
func TestChangedFloat32Mean(t *testing.T) {
	t.Parallel()

	v, err := New(uplink.KindFloat32, FoldMean)
	require.NoError(t, err)
	v.Add(float32(1))
	v.Add(float32(1.0000001))
	x, ok := v.Changed()
	require.True(t, ok)
	assert.Equal(t, float32(1), x)
	v.closeWindow()

	v.Add(float32(1))
	_, ok = v.Changed()
	assert.False(t, ok, "same float32 as reported")
	v.closeWindow()

	v.Add(float32(1.0000001))
	x, ok = v.Changed()
	require.True(t, ok)
	assert.Equal(t, float32(1.0000001), x)
}

func TestLatest(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind    uplink.Kind
		samples []interface{}
	}{
		{uplink.KindBool, []interface{}{false, true, true}},
		{uplink.KindString, []interface{}{"boot", "ok", "fault"}},
		{uplink.KindEnum, []interface{}{uplink.Enum(-1), uplink.Enum(3), uplink.Enum(3)}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.kind.String(), func(t *testing.T) {
			t.Parallel()
			v, err := New(c.kind, FoldMean)
			require.NoError(t, err)
			for _, s := range c.samples {
				v.Add(s)
			}
			last := c.samples[len(c.samples)-1]
			cur, ok := v.Current()
			require.True(t, ok)
			assert.Equal(t, last, cur)
			x, ok := v.Changed()
			require.True(t, ok)
			assert.Equal(t, last, x)
			v.Add(last)
			_, ok = v.Changed()
			assert.False(t, ok)
		})
	}
}

func TestKindMismatchPanics(t *testing.T) {
	t.Parallel()

	for _, kind := range []uplink.Kind{uplink.KindInt16, uplink.KindInt32, uplink.KindInt64, uplink.KindFloat32, uplink.KindFloat64, uplink.KindBool, uplink.KindEnum} {
		v, err := New(kind, FoldLast)
		require.NoError(t, err)
		assert.Panics(t, func() { v.Add("text") }, kind.String())
	}
	v, err := New(uplink.KindEnum, FoldLast)
	require.NoError(t, err)
	assert.Panics(t, func() { v.Add(int32(1)) }, "enum requires uplink.Enum sample")
}

func TestNewUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := New(uplink.KindInvalid, FoldLast)
	assert.True(t, errors.IsNotSupported(err))
	_, err = New(uplink.Kind(42), FoldLast)
	assert.True(t, errors.IsNotSupported(err))
}

func TestParseFold(t *testing.T) {
	t.Parallel()

	f, err := ParseFold("")
	require.NoError(t, err)
	assert.Equal(t, FoldLast, f)
	f, err = ParseFold("mean")
	require.NoError(t, err)
	assert.Equal(t, FoldMean, f)
	_, err = ParseFold("median")
	assert.True(t, errors.IsNotValid(err))
}
