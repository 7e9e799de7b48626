package engine

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io/ioutil"
	"net/url"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/juju/errors"
	"github.com/temoto/uplink/helpers"
	"github.com/temoto/uplink/log2"
	uplink_config "github.com/temoto/uplink/uplink/config"
)

func ClientID(deviceId int32) string     { return fmt.Sprintf("dev%d", deviceId) }
func TopicConnect(deviceId int32) string { return fmt.Sprintf("dev%d/c", deviceId) }
func TopicData(deviceId int32) string    { return fmt.Sprintf("dev%d/w/data", deviceId) }
func TopicCommand(deviceId int32) string { return fmt.Sprintf("dev%d/r/c", deviceId) }

// paho loggers are package globals read by live client goroutines, set once per process
var mqttLogOnce sync.Once

func setMqttLog(log *log2.Log, debug bool) {
	mqttLogOnce.Do(func() {
		mqttLog := log.Clone(log2.LInfo)
		if debug {
			mqttLog.SetLevel(log2.LDebug)
		}
		mqtt.CRITICAL = mqttLog.Printer(log2.LError)
		mqtt.ERROR = mqttLog.Printer(log2.LError)
		mqtt.WARN = mqttLog.Printer(log2.LWarning)
		mqtt.DEBUG = mqttLog.Printer(log2.LDebug)
	})
}

type transportMqtt struct {
	log            *log2.Log
	onCommand      func([]byte) bool
	m              mqtt.Client
	mopt           *mqtt.ClientOptions
	networkTimeout time.Duration

	topicConnect string
	topicData    string
	topicCommand string
}

func (self *transportMqtt) Init(ctx context.Context, log *log2.Log, config uplink_config.Config, onCommand CommandCallback) error {
	self.log = log
	setMqttLog(log, config.MqttLogDebug)

	if _, err := url.ParseRequestURI(config.MqttBroker); err != nil {
		return errors.Annotatef(err, "mqtt_broker=%s", config.MqttBroker)
	}

	deviceId := int32(config.DeviceId)
	clientId := ClientID(deviceId)
	credFun := func() (string, string) {
		return clientId, config.MqttPassword
	}
	self.onCommand = func(payload []byte) bool {
		return onCommand(ctx, payload)
	}
	self.topicConnect = TopicConnect(deviceId)
	self.topicData = TopicData(deviceId)
	self.topicCommand = TopicCommand(deviceId)

	self.networkTimeout = helpers.IntSecondDefault(config.NetworkTimeoutSec, uplink_config.DefaultNetworkTimeout)
	if self.networkTimeout < 1*time.Second {
		self.networkTimeout = 1 * time.Second
	}
	keepalive := helpers.IntSecondDefault(config.KeepaliveSec, uplink_config.DefaultKeepalive)

	tlsconf := new(tls.Config)
	if config.TlsCaFile != "" {
		tlsconf.RootCAs = x509.NewCertPool()
		cabytes, err := ioutil.ReadFile(config.TlsCaFile)
		if err != nil {
			return errors.Annotatef(err, "TLS")
		}
		if !tlsconf.RootCAs.AppendCertsFromPEM(cabytes) {
			return errors.NotValidf("tls_ca_file=%s no certificates", config.TlsCaFile)
		}
	}

	self.mopt = mqtt.NewClientOptions().
		AddBroker(config.MqttBroker).
		SetAutoReconnect(true).
		SetBinaryWill(self.topicConnect, []byte{0x00}, 1, true).
		SetCleanSession(false).
		SetClientID(clientId).
		SetConnectRetry(true).
		SetConnectRetryInterval(self.networkTimeout / 2).
		SetConnectTimeout(self.networkTimeout).
		SetConnectionLostHandler(self.connectLostHandler).
		SetCredentialsProvider(credFun).
		SetDefaultPublishHandler(self.defaultHandler).
		SetKeepAlive(keepalive).
		SetMaxReconnectInterval(self.networkTimeout * 3).
		SetOnConnectHandler(self.onConnectHandler).
		SetOrderMatters(false).
		SetPingTimeout(self.networkTimeout).
		SetStore(mqtt.NewMemoryStore()).
		SetTLSConfig(tlsconf).
		SetWriteTimeout(self.networkTimeout)
	self.m = mqtt.NewClient(self.mopt)
	// with connect retry token completes on first successful connection, do not wait
	self.m.Connect()
	return nil
}

func (self *transportMqtt) Close() {
	self.log.Debugf("mqtt disconnect")
	if self.m.IsConnectionOpen() {
		// graceful disconnect keeps will unpublished, report offline explicitly
		t := self.m.Publish(self.topicConnect, 1, true, []byte{0x00})
		_ = self.tokenWait(t, "publish offline")
	}
	self.m.Disconnect(uint(self.networkTimeout / time.Millisecond))
}

func (self *transportMqtt) SendData(payload []byte) bool {
	if !self.m.IsConnectionOpen() {
		self.log.Debugf("mqtt offline, data not sent")
		return false
	}
	t := self.m.Publish(self.topicData, 1, false, payload)
	return self.tokenWait(t, "publish data") == nil
}

func (self *transportMqtt) defaultHandler(_ mqtt.Client, msg mqtt.Message) {
	self.log.Errorf("mqtt unexpected message topic=%s payload=%x", msg.Topic(), msg.Payload())
}

func (self *transportMqtt) commandHandler(_ mqtt.Client, msg mqtt.Message) {
	if self.onCommand(msg.Payload()) {
		msg.Ack()
	}
}

func (self *transportMqtt) connectLostHandler(_ mqtt.Client, err error) {
	self.log.Infof("mqtt connection lost err=%v", err)
}

func (self *transportMqtt) onConnectHandler(c mqtt.Client) {
	self.log.Infof("mqtt connected")
	t := c.Subscribe(self.topicCommand, 1, self.commandHandler)
	if err := self.tokenWait(t, "subscribe:"+self.topicCommand); err != nil {
		return
	}
	t = c.Publish(self.topicConnect, 1, true, []byte{0x01})
	_ = self.tokenWait(t, "publish online")
}

func (self *transportMqtt) tokenWait(t mqtt.Token, tag string) error {
	if !t.WaitTimeout(self.networkTimeout) {
		err := errors.Timeoutf("mqtt %s", tag)
		self.log.Error(err)
		return err
	}
	if err := t.Error(); err != nil {
		err = errors.Annotatef(err, "mqtt %s", tag)
		self.log.Error(err)
		return err
	}
	return nil
}
