// internal/radio/mqttlink/link.go
package mqttlink

import (
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tamzrod/weather-node/internal/radio"
)

// broker is the part of mqtt.Client the link uses.
type broker interface {
	Connect() mqtt.Token
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// Config is the broker connection for a node that uplinks over MQTT
// instead of LoRa (gateway-attached or bench nodes).
type Config struct {
	Broker   string // tcp://host:port
	ClientID string
	Topic    string
	NodeID   uint32
	Timeout  time.Duration
}

// Link implements radio.Radio by publishing each frame at QoS 1.
// The broker PUBACK is the send confirmation.
type Link struct {
	cfg Config
	log logrus.FieldLogger

	newBroker func(*mqtt.ClientOptions) broker

	b       broker
	pending mqtt.Token
}

func New(cfg Config, log logrus.FieldLogger) *Link {
	return &Link{
		cfg: cfg,
		log: log,
		newBroker: func(o *mqtt.ClientOptions) broker {
			return mqtt.NewClient(o)
		},
	}
}

// Topic is where frames are published: <topic>/<node id>.
func (l *Link) Topic() string {
	return l.cfg.Topic + "/" + strconv.FormatUint(uint64(l.cfg.NodeID), 10)
}

func (l *Link) Init() error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(l.cfg.Broker)
	opts.SetClientID(l.cfg.ClientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		l.log.WithError(err).Warn("mqtt connection lost")
	})

	b := l.newBroker(opts)
	tok := b.Connect()
	if !tok.WaitTimeout(l.cfg.Timeout) {
		return errors.Errorf("mqttlink: connect %s: timeout", l.cfg.Broker)
	}
	if err := tok.Error(); err != nil {
		return errors.Wrapf(err, "mqttlink: connect %s", l.cfg.Broker)
	}

	l.b = b
	l.log.WithField("broker", l.cfg.Broker).Info("mqtt connected")
	return nil
}

// Configure has nothing to tune on a broker link; the values are logged.
func (l *Link) Configure(frequencyHz uint32, txPowerDBm int8) error {
	if l.b == nil {
		return radio.ErrNotInitialized
	}
	l.log.WithFields(logrus.Fields{
		"frequency_hz": frequencyHz,
		"tx_power_dbm": txPowerDBm,
	}).Debug("mqtt link ignores rf settings")
	return nil
}

func (l *Link) Send(frame []byte) error {
	if l.b == nil {
		return radio.ErrNotInitialized
	}
	payload := append([]byte(nil), frame...)
	l.pending = l.b.Publish(l.Topic(), 1, false, payload)
	return nil
}

func (l *Link) WaitSent() error {
	if l.pending == nil {
		return radio.ErrNothingPending
	}
	tok := l.pending
	l.pending = nil

	if !tok.WaitTimeout(l.cfg.Timeout) {
		return errors.Errorf("mqttlink: publish %s: timeout", l.Topic())
	}
	return errors.Wrapf(tok.Error(), "mqttlink: publish %s", l.Topic())
}

// Sleep is a no-op; the client keeps its session between cycles.
func (l *Link) Sleep() error {
	if l.b == nil {
		return radio.ErrNotInitialized
	}
	return nil
}

func (l *Link) Close() error {
	if l.b != nil {
		l.b.Disconnect(250)
		l.b = nil
	}
	return nil
}
