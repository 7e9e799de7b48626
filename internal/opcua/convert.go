package opcua

import (
	"math"

	"github.com/gopcua/opcua/ua"
	"github.com/juju/errors"
	"github.com/temoto/uplink/uplink"
)

// Convert maps variant to sample of channel kind.
// Integers must fit kind range, floats to integer kinds are truncated.
func Convert(kind uplink.Kind, v *ua.Variant) (interface{}, error) {
	if v == nil {
		return nil, errors.NotValidf("variant=nil")
	}
	x := v.Value()
	switch kind {
	case uplink.KindInt16:
		i, err := toInt(x, math.MinInt16, math.MaxInt16)
		return int16(i), err
	case uplink.KindInt32:
		i, err := toInt(x, math.MinInt32, math.MaxInt32)
		return int32(i), err
	case uplink.KindInt64:
		return toInt(x, math.MinInt64, math.MaxInt64)
	case uplink.KindEnum:
		i, err := toInt(x, 0, math.MaxInt32)
		return uplink.Enum(i), err
	case uplink.KindFloat32:
		f, err := toFloat(x)
		return float32(f), err
	case uplink.KindFloat64:
		return toFloat(x)
	case uplink.KindBool:
		if b, ok := x.(bool); ok {
			return b, nil
		}
	case uplink.KindString:
		switch s := x.(type) {
		case string:
			return s, nil
		case *ua.LocalizedText:
			return s.Text, nil
		}
	default:
		return nil, errors.NotSupportedf("kind=%s", kind)
	}
	return nil, errors.NotValidf("variant type=%T for kind=%s", x, kind)
}

func toInt(x interface{}, min, max int64) (int64, error) {
	var i int64
	switch v := x.(type) {
	case int8:
		i = int64(v)
	case uint8:
		i = int64(v)
	case int16:
		i = int64(v)
	case uint16:
		i = int64(v)
	case int32:
		i = int64(v)
	case uint32:
		i = int64(v)
	case int64:
		i = v
	case uint64:
		if v > math.MaxInt64 {
			return 0, errors.NotValidf("value=%d out of range", v)
		}
		i = int64(v)
	case float32:
		return floatToInt(float64(v), min, max)
	case float64:
		return floatToInt(v, min, max)
	default:
		return 0, errors.NotValidf("variant type=%T for integer", x)
	}
	if i < min || i > max {
		return 0, errors.NotValidf("value=%d out of range [%d..%d]", i, min, max)
	}
	return i, nil
}

func floatToInt(f float64, min, max int64) (int64, error) {
	f = math.Trunc(f)
	// float64(MaxInt64) rounds up to 2^63, hence >= max+1
	if math.IsNaN(f) || f < float64(min) || f >= float64(max)+1 {
		return 0, errors.NotValidf("value=%v out of range [%d..%d]", f, min, max)
	}
	return int64(f), nil
}

func toFloat(x interface{}) (float64, error) {
	switch v := x.(type) {
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case int8, uint8, int16, uint16, int32, uint32, int64, uint64:
		i, err := toInt(x, math.MinInt64, math.MaxInt64)
		return float64(i), err
	}
	return 0, errors.NotValidf("variant type=%T for float", x)
}
