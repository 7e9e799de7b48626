// Package source describes where channel values come from.
// Engine only reads through Lister/Source/Channel, everything else here
// is in-process implementation used by the daemon and tests.
package source

import (
	"github.com/juju/errors"
	"github.com/temoto/uplink/uplink"
)

type AccessMode uint8

const (
	AccessInvalid AccessMode = iota
	ReadOnly
	WriteOnly
	ReadWrite
)

func ParseAccess(s string) (AccessMode, error) {
	switch s {
	case "ro", "read_only", "":
		return ReadOnly, nil
	case "wo", "write_only":
		return WriteOnly, nil
	case "rw", "read_write":
		return ReadWrite, nil
	}
	return AccessInvalid, errors.NotValidf("access=%q", s)
}

// Readable write-only channels are never sampled.
func (a AccessMode) Readable() bool { return a == ReadOnly || a == ReadWrite }

func (a AccessMode) String() string {
	switch a {
	case ReadOnly:
		return "ro"
	case WriteOnly:
		return "wo"
	case ReadWrite:
		return "rw"
	}
	return "invalid"
}

// Channel Value returns nil when value is not available yet.
type Channel interface {
	Address() uplink.Address
	Access() AccessMode
	Kind() uplink.Kind
	Value() interface{}
}

// Optioner is implemented by channels that may carry named enum options.
type Optioner interface {
	HasOptions() bool
}

type Source interface {
	ID() string
	Enabled() bool
	Channels() []Channel
}

type Lister interface {
	EnabledSources() []Source
}
