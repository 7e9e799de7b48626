package opcua

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/gopcua/opcua/ua"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/uplink/internal/source"
	"github.com/temoto/uplink/log2"
	"github.com/temoto/uplink/uplink"
)

func TestConvert(t *testing.T) {
	t.Parallel()

	type Case struct {
		name      string
		kind      uplink.Kind
		input     interface{}
		expect    interface{}
		expectErr bool
	}
	cases := []Case{
		{"int16-from-uint8", uplink.KindInt16, uint8(200), int16(200), false},
		{"int16-overflow", uplink.KindInt16, int32(40000), nil, true},
		{"int32-from-float-trunc", uplink.KindInt32, float64(-7.9), int32(-7), false},
		{"int32-from-nan", uplink.KindInt32, math.NaN(), nil, true},
		{"int64-from-uint64", uplink.KindInt64, uint64(1 << 40), int64(1 << 40), false},
		{"int64-uint64-overflow", uplink.KindInt64, uint64(math.MaxUint64), nil, true},
		{"int64-from-string", uplink.KindInt64, "5", nil, true},
		{"float32", uplink.KindFloat32, float64(0.5), float32(0.5), false},
		{"float64-from-int16", uplink.KindFloat64, int16(-3), float64(-3), false},
		{"bool", uplink.KindBool, true, true, false},
		{"bool-from-int", uplink.KindBool, int32(1), nil, true},
		{"string", uplink.KindString, "ok", "ok", false},
		{"string-localized", uplink.KindString, &ua.LocalizedText{Text: "run"}, "run", false},
		{"enum", uplink.KindEnum, uint16(3), uplink.Enum(3), false},
		{"enum-negative", uplink.KindEnum, int32(-1), nil, true},
		{"unknown-kind", uplink.Kind(99), int32(1), nil, true},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			x, err := Convert(c.kind, ua.MustVariant(c.input))
			if c.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.expect, x)
		})
	}

	_, err := Convert(uplink.KindInt32, nil)
	assert.True(t, errors.IsNotValid(err))
}

func newTestPoints(t testing.TB) (*source.Point, *source.Point) {
	comp := source.NewComponent("plc0")
	power, err := comp.AddPoint("Power", uplink.KindFloat32, source.ReadOnly)
	require.NoError(t, err)
	mode, err := comp.AddPoint("Mode", uplink.KindEnum, source.ReadOnly)
	require.NoError(t, err)
	return power, mode
}

func TestNewBridgeInvalid(t *testing.T) {
	t.Parallel()

	log := log2.NewTest(t, log2.LDebug)
	power, _ := newTestPoints(t)
	type Case struct {
		name   string
		cfg    Config
		nodes  []Node
		expect string
	}
	cases := []Case{
		{"no-endpoint", Config{}, []Node{{NodeID: "ns=2;i=1", Point: power}}, "endpoint=(empty) not valid"},
		{"no-nodes", Config{Endpoint: "opc.tcp://plc:4840"}, nil, "without nodes not valid"},
		{"bad-node-id", Config{Endpoint: "opc.tcp://plc:4840"}, []Node{{NodeID: "ns=x;q", Point: power}}, "node_id=ns=x;q"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			b, err := NewBridge(log, c.cfg, c.nodes)
			require.Error(t, err)
			assert.Nil(t, b)
			assert.Contains(t, err.Error(), c.expect)
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	log := log2.NewTest(t, log2.LDebug)
	power, mode := newTestPoints(t)
	b, err := NewBridge(log, Config{Endpoint: "opc.tcp://plc:4840"}, []Node{
		{NodeID: "ns=2;s=Power", Point: power},
		{NodeID: "ns=2;i=7", Point: mode},
	})
	require.NoError(t, err)
	assert.Equal(t, "None", b.cfg.SecurityMode)

	b.apply(&ua.DataChangeNotification{MonitoredItems: []*ua.MonitoredItemNotification{
		{ClientHandle: 1, Value: &ua.DataValue{Value: ua.MustVariant(float64(12.5)), Status: ua.StatusOK}},
		{ClientHandle: 2, Value: &ua.DataValue{Value: ua.MustVariant(uint32(2)), Status: ua.StatusOK}},
		{ClientHandle: 9, Value: &ua.DataValue{Value: ua.MustVariant(uint32(2)), Status: ua.StatusOK}},
	}})
	assert.Equal(t, float32(12.5), power.Value())
	assert.Equal(t, uplink.Enum(2), mode.Value())

	b.apply(&ua.DataChangeNotification{MonitoredItems: []*ua.MonitoredItemNotification{
		{ClientHandle: 1, Value: &ua.DataValue{Status: ua.StatusBadNodeIDUnknown}},
		{ClientHandle: 2, Value: &ua.DataValue{Value: ua.MustVariant("fault"), Status: ua.StatusOK}},
	}})
	assert.Nil(t, power.Value())
	assert.Nil(t, mode.Value())
}

func TestStartStopUnreachable(t *testing.T) {
	t.Parallel()

	log := log2.NewTest(t, log2.LDebug)
	power, _ := newTestPoints(t)
	power.MustSet(float32(1))
	b, err := NewBridge(log, Config{Endpoint: "opc.tcp://127.0.0.1:1", RetrySec: 60}, []Node{{NodeID: "ns=2;i=1", Point: power}})
	require.NoError(t, err)
	require.NoError(t, b.Start(context.Background()))
	assert.True(t, errors.IsAlreadyExists(b.Start(context.Background())))

	deadline := time.Now().Add(5 * time.Second)
	for power.Value() != nil && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Nil(t, power.Value())

	done := make(chan struct{})
	go func() {
		b.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop timeout")
	}
}
