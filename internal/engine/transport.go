package engine

import (
	"context"

	"github.com/temoto/uplink/log2"
	uplink_config "github.com/temoto/uplink/uplink/config"
)

// Transporter contract:
// - Init fails only with invalid config, ignores network errors
// - SendData returns within network timeout; true includes ack from receiver
// - SendData while offline returns false immediately
// - application may start without network available
type Transporter interface {
	Init(ctx context.Context, log *log2.Log, config uplink_config.Config, onCommand CommandCallback) error
	SendData(payload []byte) bool
	Close()
}

// CommandCallback returns false to ask transport for redelivery.
type CommandCallback func(context.Context, []byte) bool
