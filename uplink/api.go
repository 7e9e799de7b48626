// Package uplink is the public API of edge telemetry uplink:
// channel addressing, value kinds and wire messages exchanged with remote collector.
package uplink

import (
	"context"
	"fmt"
	"strings"

	"github.com/temoto/uplink/log2"
	uplink_config "github.com/temoto/uplink/uplink/config"
)

//go:generate protoc --go_out=. --go_opt=paths=source_relative uplink.proto

// Address names one measured point, e.g. meter0/ActivePower.
type Address struct {
	Component string
	Channel   string
}

func (a Address) String() string { return a.Component + "/" + a.Channel }

func ParseAddress(s string) (Address, error) {
	i := strings.IndexByte(s, '/')
	if i <= 0 || i == len(s)-1 {
		return Address{}, fmt.Errorf("invalid channel address=%q expected component/channel", s)
	}
	return Address{Component: s[:i], Channel: s[i+1:]}, nil
}

type Kind int32

const (
	KindInvalid Kind = iota
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindEnum
	kindEnd
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindBool:    "bool",
	KindString:  "string",
	KindEnum:    "enum",
}

func (k Kind) Valid() bool { return k > KindInvalid && k < kindEnd }

// Numeric kinds are folded by sliding value, others take latest sample.
func (k Kind) Numeric() bool { return k >= KindInt16 && k <= KindFloat64 }

func (k Kind) String() string {
	if k >= 0 && k < kindEnd {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int32(k))
}

func ParseKind(s string) (Kind, bool) {
	for k := KindInt16; k < kindEnd; k++ {
		if kindNames[k] == s {
			return k, true
		}
	}
	return KindInvalid, false
}

// Uplinker is telemetry uplink, edge device side.
// - Init fails only with invalid config, network issues are ignored
// - SendAllOnce never blocks
// - Close blocks until in-flight cycle is finished, undelivered messages are lost
type Uplinker interface {
	Init(context.Context, *log2.Log, uplink_config.Config) error
	SendAllOnce()
	Close()
}

type Noop struct{}

var _ Uplinker = Noop{} // compile-time interface test

func (Noop) Init(context.Context, *log2.Log, uplink_config.Config) error { return nil }
func (Noop) SendAllOnce()                                                {}
func (Noop) Close()                                                      {}
