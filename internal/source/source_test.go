package source

import (
	"fmt"
	"sync"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/uplink/uplink"
)

func TestParseAccess(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input  string
		expect AccessMode
		read   bool
	}{
		{"", ReadOnly, true},
		{"ro", ReadOnly, true},
		{"read_write", ReadWrite, true},
		{"rw", ReadWrite, true},
		{"wo", WriteOnly, false},
	}
	for _, c := range cases {
		c := c
		t.Run(c.input, func(t *testing.T) {
			t.Parallel()
			a, err := ParseAccess(c.input)
			require.NoError(t, err)
			assert.Equal(t, c.expect, a)
			assert.Equal(t, c.read, a.Readable())
		})
	}
	_, err := ParseAccess("x")
	assert.True(t, errors.IsNotValid(err))
}

func TestPointSet(t *testing.T) {
	t.Parallel()

	c := NewComponent("meter0")
	p, err := c.AddPoint("ActivePower", uplink.KindInt32, ReadOnly)
	require.NoError(t, err)
	assert.Equal(t, uplink.Address{Component: "meter0", Channel: "ActivePower"}, p.Address())
	assert.Nil(t, p.Value())

	require.NoError(t, p.Set(int32(42)))
	assert.Equal(t, int32(42), p.Value())
	err = p.Set(int64(42))
	assert.True(t, errors.IsNotValid(err))
	assert.Equal(t, int32(42), p.Value())
	require.NoError(t, p.Set(nil))
	assert.Nil(t, p.Value())

	_, err = c.AddPoint("ActivePower", uplink.KindInt64, ReadOnly)
	assert.True(t, errors.IsAlreadyExists(err))
	_, err = c.AddPoint("", uplink.KindInt64, ReadOnly)
	assert.True(t, errors.IsNotValid(err))

	state, err := c.AddPoint("State", uplink.KindEnum, ReadOnly)
	require.NoError(t, err)
	assert.False(t, state.HasOptions())
	state.SetOptions([]string{"ok", "info", "warning", "fault"})
	assert.True(t, state.HasOptions())
	assert.Equal(t, []string{"ok", "info", "warning", "fault"}, state.Options())
	state.MustSet(uplink.Enum(3))
	assert.Panics(t, func() { state.MustSet(int32(3)) })

	assert.Len(t, c.Channels(), 2)
	got, ok := c.Point("State")
	require.True(t, ok)
	assert.Same(t, state, got)
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	a, b, d := NewComponent("a"), NewComponent("b"), NewComponent("d")
	require.NoError(t, r.Add(a))
	require.NoError(t, r.Add(b))
	require.NoError(t, r.Add(d))
	assert.True(t, errors.IsAlreadyExists(r.Add(NewComponent("b"))))
	assert.True(t, errors.IsNotValid(r.Add(NewComponent(""))))

	ids := func() []string {
		result := []string{}
		for _, s := range r.EnabledSources() {
			result = append(result, s.ID())
		}
		return result
	}
	assert.Equal(t, []string{"a", "b", "d"}, ids())
	b.Disable()
	assert.Equal(t, []string{"a", "d"}, ids())
	b.Enable()
	assert.True(t, r.Remove("a"))
	assert.False(t, r.Remove("a"))
	assert.Equal(t, []string{"b", "d"}, ids())
	assert.Equal(t, 2, r.Len())
}

func TestRegistryConcurrent(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	wg := sync.WaitGroup{}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, r.Add(NewComponent(fmt.Sprint(i))))
			_ = r.EnabledSources()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, r.Len())
}

func TestRuntime(t *testing.T) {
	t.Parallel()

	r := NewRuntime("")
	assert.Equal(t, DefaultRuntimeID, r.ID())
	assert.True(t, r.Enabled())
	require.NotEmpty(t, r.Channels())
	for _, ch := range r.Channels() {
		assert.Equal(t, DefaultRuntimeID, ch.Address().Component)
		assert.Equal(t, ReadOnly, ch.Access())
		v := ch.Value()
		require.NotNil(t, v, ch.Address().String())
		assert.Equal(t, ch.Kind(), uplink.KindOf(v), ch.Address().String())
	}
}
