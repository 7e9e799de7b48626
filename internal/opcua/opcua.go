// Package opcua feeds config declared channels from OPC UA server subscription.
package opcua

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gopcua/opcua"
	"github.com/gopcua/opcua/ua"
	"github.com/juju/errors"
	"github.com/temoto/alive/v2"
	"github.com/temoto/uplink/helpers"
	"github.com/temoto/uplink/internal/source"
	"github.com/temoto/uplink/log2"
)

const (
	DefaultApplicationName = "uplink"
	DefaultPublishInterval = 250 * time.Millisecond
	DefaultRetry           = 10 * time.Second
)

type Config struct { //nolint:maligned
	Endpoint           string `hcl:"endpoint"`
	Username           string `hcl:"username"`
	Password           string `hcl:"password"` // secret
	SecurityMode       string `hcl:"security_mode"`
	SecurityPolicy     string `hcl:"security_policy"`
	ApplicationName    string `hcl:"application_name"`
	PublishIntervalMs  int    `hcl:"publish_interval_ms"`
	SamplingIntervalMs int    `hcl:"sampling_interval_ms"`
	RetrySec           int    `hcl:"retry_sec"`
}

func (c *Config) Enabled() bool { return c.Endpoint != "" }

func (c *Config) applyDefaults() {
	c.SecurityMode = normalizeSecurityMode(c.SecurityMode)
	if c.SecurityPolicy == "" {
		c.SecurityPolicy = "None"
	}
	if c.ApplicationName == "" {
		c.ApplicationName = DefaultApplicationName
	}
}

func (c *Config) publishInterval() time.Duration {
	if c.PublishIntervalMs <= 0 {
		return DefaultPublishInterval
	}
	return time.Duration(c.PublishIntervalMs) * time.Millisecond
}

// Node binds OPC UA node to channel point.
type Node struct {
	NodeID string
	Point  *source.Point

	id *ua.NodeID
}

// Bridge keeps subscription to server, reconnects after failures.
// Points of unreachable nodes are set to nil (not available).
type Bridge struct {
	cfg   Config
	log   *log2.Log
	nodes []Node
	retry time.Duration
	alive *alive.Alive

	mu      sync.Mutex
	started bool
}

func NewBridge(log *log2.Log, cfg Config, nodes []Node) (*Bridge, error) {
	cfg.applyDefaults()
	if !cfg.Enabled() {
		return nil, errors.NotValidf("opcua endpoint=(empty)")
	}
	if len(nodes) == 0 {
		return nil, errors.NotValidf("opcua endpoint=%s without nodes", cfg.Endpoint)
	}
	b := &Bridge{
		cfg:   cfg,
		log:   log,
		nodes: make([]Node, len(nodes)),
		retry: helpers.IntSecondDefault(cfg.RetrySec, DefaultRetry),
		alive: alive.NewAlive(),
	}
	errs := make([]error, 0)
	for i, n := range nodes {
		id, err := ua.ParseNodeID(n.NodeID)
		if err != nil {
			errs = append(errs, errors.Annotatef(err, "opcua channel=%s node_id=%s", n.Point.Address().String(), n.NodeID))
			continue
		}
		b.nodes[i] = Node{NodeID: n.NodeID, Point: n.Point, id: id}
	}
	if err := helpers.FoldErrors(errs); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bridge) Endpoint() string { return b.cfg.Endpoint }

// Start returns immediately, server may be unreachable.
func (b *Bridge) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return errors.AlreadyExistsf("opcua endpoint=%s started", b.cfg.Endpoint)
	}
	if !b.alive.Add(1) {
		return errors.Errorf("opcua endpoint=%s stopped", b.cfg.Endpoint)
	}
	b.started = true
	go b.worker(ctx)
	return nil
}

func (b *Bridge) Stop() {
	b.alive.Stop()
	b.alive.Wait()
}

func (b *Bridge) worker(ctx context.Context) {
	defer b.alive.Done()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stopch := b.alive.StopChan()
	go func() {
		select {
		case <-stopch:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		err := b.session(ctx)
		b.unavailable()
		if ctx.Err() != nil {
			return
		}
		b.log.Errorf("opcua endpoint=%s err=%v retry=%v", b.cfg.Endpoint, err, b.retry)
		select {
		case <-time.After(b.retry):
		case <-ctx.Done():
			return
		}
	}
}

// session returns error or nil when ctx is done.
func (b *Bridge) session(ctx context.Context) error {
	client, err := opcua.NewClient(b.cfg.Endpoint, b.clientOptions()...)
	if err != nil {
		return errors.Annotate(err, "new client")
	}
	if err = client.Connect(ctx); err != nil {
		return errors.Annotate(err, "connect")
	}
	defer func() {
		cctx, ccancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer ccancel()
		_ = client.Close(cctx)
	}()

	notifyCh := make(chan *opcua.PublishNotificationData, len(b.nodes)*4)
	sub, err := client.Subscribe(ctx, &opcua.SubscriptionParameters{
		Interval: b.cfg.publishInterval(),
	}, notifyCh)
	if err != nil {
		return errors.Annotate(err, "subscribe")
	}
	defer func() {
		cctx, ccancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer ccancel()
		_ = sub.Cancel(cctx)
	}()

	for i, n := range b.nodes {
		// handle is index+1, zero is reserved
		req := opcua.NewMonitoredItemCreateRequestWithDefaults(n.id, ua.AttributeIDValue, uint32(i+1))
		if b.cfg.SamplingIntervalMs > 0 {
			req.RequestedParameters.SamplingInterval = float64(b.cfg.SamplingIntervalMs)
		}
		res, err := sub.Monitor(ctx, ua.TimestampsToReturnNeither, req)
		if err != nil {
			return errors.Annotatef(err, "monitor node=%s", n.NodeID)
		}
		if len(res.Results) == 0 || res.Results[0].StatusCode != ua.StatusOK {
			// node may appear later, others still useful
			b.log.Errorf("opcua endpoint=%s monitor node=%s result=%v", b.cfg.Endpoint, n.NodeID, res.Results)
		}
	}
	b.log.Infof("opcua endpoint=%s subscribed nodes=%d", b.cfg.Endpoint, len(b.nodes))

	for {
		select {
		case <-ctx.Done():
			return nil
		case notif := <-notifyCh:
			if notif == nil {
				continue
			}
			if notif.Error != nil {
				b.log.Errorf("opcua endpoint=%s notification err=%v", b.cfg.Endpoint, notif.Error)
				continue
			}
			if data, ok := notif.Value.(*ua.DataChangeNotification); ok {
				b.apply(data)
			}
		}
	}
}

func (b *Bridge) apply(data *ua.DataChangeNotification) {
	for _, item := range data.MonitoredItems {
		i := int(item.ClientHandle) - 1
		if i < 0 || i >= len(b.nodes) {
			continue
		}
		n := &b.nodes[i]
		if item.Value == nil || item.Value.Status != ua.StatusOK {
			_ = n.Point.Set(nil)
			continue
		}
		x, err := Convert(n.Point.Kind(), item.Value.Value)
		if err != nil {
			b.log.Errorf("opcua node=%s channel=%s err=%v", n.NodeID, n.Point.Address().String(), err)
			_ = n.Point.Set(nil)
			continue
		}
		if err = n.Point.Set(x); err != nil {
			b.log.Errorf("code error opcua node=%s err=%v", n.NodeID, err)
		}
	}
}

func (b *Bridge) unavailable() {
	for i := range b.nodes {
		_ = b.nodes[i].Point.Set(nil)
	}
}

func (b *Bridge) clientOptions() []opcua.Option {
	opts := []opcua.Option{
		opcua.SecurityModeString(b.cfg.SecurityMode),
		opcua.SecurityPolicy(b.cfg.SecurityPolicy),
		opcua.ApplicationName(b.cfg.ApplicationName),
		opcua.AutoReconnect(true),
	}
	if b.cfg.Username != "" {
		opts = append(opts, opcua.AuthUsername(b.cfg.Username, b.cfg.Password))
	} else {
		opts = append(opts, opcua.AuthAnonymous())
	}
	return opts
}

func normalizeSecurityMode(mode string) string {
	switch strings.ToLower(mode) {
	case "sign":
		return "Sign"
	case "signandencrypt", "sign_and_encrypt":
		return "SignAndEncrypt"
	default:
		return "None"
	}
}
