package uplink

import (
	"fmt"
	"time"
)

// Enum is sample type of KindEnum channels, distinct from int32 to keep kind inference exact.
type Enum int32

// KindOf maps Go sample type to Kind, KindInvalid for unsupported types.
func KindOf(x interface{}) Kind {
	switch x.(type) {
	case int16:
		return KindInt16
	case int32:
		return KindInt32
	case int64:
		return KindInt64
	case float32:
		return KindFloat32
	case float64:
		return KindFloat64
	case bool:
		return KindBool
	case string:
		return KindString
	case Enum:
		return KindEnum
	}
	return KindInvalid
}

func NewValue(x interface{}) (*Value, error) {
	v := &Value{Kind: ValueKind(KindOf(x))}
	switch t := x.(type) {
	case int16:
		v.Int = int64(t)
	case int32:
		v.Int = int64(t)
	case int64:
		v.Int = t
	case Enum:
		v.Int = int64(t)
	case float32:
		v.Float = float64(t)
	case float64:
		v.Float = t
	case bool:
		v.Bool = t
	case string:
		v.Str = t
	default:
		return nil, fmt.Errorf("unsupported value type=%T", x)
	}
	return v, nil
}

// Native returns Go sample typed by Kind, nil for invalid kind.
func (m *Value) Native() interface{} {
	switch Kind(m.Kind) {
	case KindInt16:
		return int16(m.Int)
	case KindInt32:
		return int32(m.Int)
	case KindInt64:
		return m.Int
	case KindEnum:
		return Enum(m.Int)
	case KindFloat32:
		return float32(m.Float)
	case KindFloat64:
		return m.Float
	case KindBool:
		return m.Bool
	case KindString:
		return m.Str
	}
	return nil
}

func NewSnapshot(t time.Time, deviceId int32, values map[Address]interface{}) (*Snapshot, error) {
	s := &Snapshot{
		Time:     t.UnixNano() / int64(time.Millisecond),
		Values:   make(map[string]*Value, len(values)),
		DeviceId: deviceId,
	}
	for addr, x := range values {
		v, err := NewValue(x)
		if err != nil {
			return nil, fmt.Errorf("channel=%s: %v", addr.String(), err)
		}
		s.Values[addr.String()] = v
	}
	return s, nil
}

func (m *Snapshot) Timestamp() time.Time {
	return time.Unix(0, m.Time*int64(time.Millisecond))
}
