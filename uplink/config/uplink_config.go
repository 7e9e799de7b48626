// Separate package is workaround to import cycles.
package uplink_config

import (
	"time"
)

const (
	DefaultCycleTime      = 1 * time.Second
	DefaultNoOfCycles     = 10
	DefaultCacheSize      = 1000
	DefaultNetworkTimeout = 30 * time.Second
	DefaultKeepalive      = 60 * time.Second

	FoldLast = "last"
	FoldMean = "mean"
)

type Config struct { //nolint:maligned
	Enabled     bool   `hcl:"enable"`
	DeviceId    int    `hcl:"device_id"`
	LogDebug    bool   `hcl:"log_debug"`
	CycleTimeMs int    `hcl:"cycle_time_ms"`
	NoOfCycles  int    `hcl:"no_of_cycles"`
	CacheSize   int    `hcl:"cache_size"`
	Fold        string `hcl:"fold"`

	// observation fan-out, 0 = NumCPU
	ObserveWorkers int `hcl:"observe_workers"`

	MqttBroker        string `hcl:"mqtt_broker"`
	MqttLogDebug      bool   `hcl:"mqtt_log_debug"`
	MqttPassword      string `hcl:"mqtt_password"` // secret
	KeepaliveSec      int    `hcl:"keepalive_sec"`
	NetworkTimeoutSec int    `hcl:"network_timeout_sec"`
	TlsCaFile         string `hcl:"tls_ca_file"`

	MetricsListen string `hcl:"metrics_listen"`
}

func (c *Config) CycleTime() time.Duration {
	if c.CycleTimeMs <= 0 {
		return DefaultCycleTime
	}
	return time.Duration(c.CycleTimeMs) * time.Millisecond
}

func (c *Config) Cycles() int {
	if c.NoOfCycles <= 0 {
		return DefaultNoOfCycles
	}
	return c.NoOfCycles
}

func (c *Config) CacheCapacity() int {
	if c.CacheSize <= 0 {
		return DefaultCacheSize
	}
	return c.CacheSize
}

func (c *Config) FoldRule() string {
	if c.Fold == "" {
		return FoldLast
	}
	return c.Fold
}
