package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/temoto/uplink/log2"
	uplink_config "github.com/temoto/uplink/uplink/config"
)

type transportMock struct {
	t              testing.TB
	onCommand      CommandCallback
	networkTimeout time.Duration
	outBuffer      int
	outData        chan []byte

	mu      sync.Mutex
	script  []bool // outcomes of next sends, then success
	offline bool
	closed  bool
}

func (self *transportMock) Init(ctx context.Context, log *log2.Log, config uplink_config.Config, onCommand CommandCallback) error {
	self.onCommand = onCommand
	if self.networkTimeout == 0 {
		self.networkTimeout = uplink_config.DefaultNetworkTimeout
	}
	self.outData = make(chan []byte, self.outBuffer)
	return nil
}

func (self *transportMock) SendData(payload []byte) bool {
	self.mu.Lock()
	ok := !self.offline
	if len(self.script) != 0 {
		ok = self.script[0]
		self.script = self.script[1:]
	}
	self.mu.Unlock()
	if !ok {
		self.t.Logf("mock send failure data=%x", payload)
		return false
	}

	select {
	case self.outData <- copyBytes(payload):
		self.t.Logf("mock delivered data=%x", payload)
	case <-time.After(self.networkTimeout):
		self.t.Logf("mock network timeout")
		return false
	}
	return true
}

func (self *transportMock) Close() {
	self.mu.Lock()
	self.closed = true
	self.mu.Unlock()
}

func (self *transportMock) Script(outcomes ...bool) {
	self.mu.Lock()
	self.script = append(self.script, outcomes...)
	self.mu.Unlock()
}

func (self *transportMock) SetOffline(offline bool) {
	self.mu.Lock()
	self.offline = offline
	self.mu.Unlock()
}

// split send/receive buffer identity for safe concurrent access
func copyBytes(b []byte) []byte {
	new := make([]byte, len(b))
	copy(new, b)
	return new
}
