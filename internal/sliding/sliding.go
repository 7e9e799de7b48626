// Package sliding collapses a burst of same-channel samples observed between
// two flushes into one representative value and tracks whether it changed
// since the value last reported.
package sliding

import (
	"fmt"

	"github.com/juju/errors"
	"github.com/temoto/uplink/uplink"
	uplink_config "github.com/temoto/uplink/uplink/config"
)

// Fold is rule for numeric kinds. Latest kinds always take newest sample.
type Fold uint8

const (
	FoldLast Fold = iota // last sample wins
	FoldMean             // arithmetic mean of window, integers truncate toward zero
)

func ParseFold(s string) (Fold, error) {
	switch s {
	case uplink_config.FoldLast, "":
		return FoldLast, nil
	case uplink_config.FoldMean:
		return FoldMean, nil
	}
	return FoldLast, errors.NotValidf("fold=%q", s)
}

func (f Fold) String() string {
	if f == FoldMean {
		return uplink_config.FoldMean
	}
	return uplink_config.FoldLast
}

// Value is per-channel aggregator. Closed set: Int16, Int32, Int64, Float32, Float64, Latest.
// Add with sample of wrong Go type is code error and panics.
type Value interface {
	Kind() uplink.Kind
	Add(sample interface{})
	// Current representative value of window, false until first sample.
	Current() (interface{}, bool)
	// Changed returns representative value if it differs from baseline and advances baseline.
	// Calling it consumes the change.
	Changed() (interface{}, bool)

	closeWindow()
}

func New(kind uplink.Kind, fold Fold) (Value, error) {
	if kind.Valid() && !kind.Numeric() {
		return &Latest{kind: kind}, nil
	}
	switch kind {
	case uplink.KindInt16:
		return &Int16{ints{fold: fold}}, nil
	case uplink.KindInt32:
		return &Int32{ints{fold: fold}}, nil
	case uplink.KindInt64:
		return &Int64{ints{fold: fold}}, nil
	case uplink.KindFloat32:
		return &Float32{floats{fold: fold, single: true}}, nil
	case uplink.KindFloat64:
		return &Float64{floats{fold: fold}}, nil
	}
	return nil, errors.NotSupportedf("sliding value kind=%s", kind)
}

func panicKind(kind uplink.Kind, sample interface{}) {
	panic(fmt.Sprintf("code error sliding value kind=%s sample=%#v type=%T", kind, sample, sample))
}
