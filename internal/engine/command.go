package engine

import (
	"context"

	"github.com/golang/protobuf/proto"
	"github.com/temoto/uplink/uplink"
)

func (self *Engine) onCommandMessage(ctx context.Context, payload []byte) bool {
	cmd := new(uplink.Command)
	if err := proto.Unmarshal(payload, cmd); err != nil {
		self.log.Errorf("uplink command parse raw=%x err=%v", payload, err)
		return true // redelivery will not help
	}
	self.log.Debugf("uplink command raw=%x cmd=%s", payload, cmd.String())
	if cmd.SendAll {
		self.SendAllOnce()
	}
	return true
}
