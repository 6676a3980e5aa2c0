// MQTT implementation of the remote client. State values are published
// retained under individual topics; config is mirrored back by subscribing
// to retained greenhouse/config/ topics, so a pull is a read of the latest
// values the broker delivered.
package mqtt

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"

	"github.com/barnybug/greenhouse/config"
	"github.com/barnybug/greenhouse/remote"
)

const (
	configPrefix = "greenhouse/config/"
	statePrefix  = "greenhouse/state/"

	connectTimeout = 20 * time.Second
	publishTimeout = 5 * time.Second
)

type Client struct {
	broker string
	opts   *MQTT.ClientOptions
	client MQTT.Client

	mu       sync.Mutex
	received map[string]string
}

// New creates the client. No network I/O happens until Authenticate.
func New(broker, user, token, clientId string) *Client {
	if clientId == "" {
		// generate a client id
		hostname, _ := os.Hostname()
		clientId = fmt.Sprintf("greenhouse/%s-%d-%d", hostname, os.Getpid(), rand.Int())
	}
	opts := MQTT.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientId)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(false)
	opts.SetConnectTimeout(connectTimeout)
	if user != "" {
		opts.SetUsername(user)
		opts.SetPassword(token)
	}
	return &Client{
		broker:   broker,
		opts:     opts,
		received: map[string]string{},
	}
}

// Authenticate connects and subscribes to the config tree. The broker
// replays the retained config values right after the subscribe.
func (self *Client) Authenticate() error {
	if self.client != nil && self.client.IsConnected() {
		return nil
	}
	self.client = MQTT.NewClient(self.opts)
	token := self.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return errors.New("connect timed out")
	}
	if err := token.Error(); err != nil {
		return errors.Wrap(err, "connecting")
	}
	sub := self.client.Subscribe(configPrefix+"#", 1, self.configHandler)
	if sub.Wait() && sub.Error() != nil {
		return errors.Wrap(sub.Error(), "subscribing config")
	}
	return nil
}

func (self *Client) configHandler(client MQTT.Client, msg MQTT.Message) {
	key := strings.TrimPrefix(msg.Topic(), configPrefix)
	self.mu.Lock()
	self.received[key] = string(msg.Payload())
	self.mu.Unlock()
}

func (self *Client) publish(topic, payload string) error {
	token := self.client.Publish(topic, 1, true, payload)
	if !token.WaitTimeout(publishTimeout) {
		return errors.Errorf("publish %s timed out", topic)
	}
	return token.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PushState publishes the snapshot, one retained value per leaf topic.
func (self *Client) PushState(s remote.Snapshot) error {
	if self.client == nil || !self.client.IsConnected() {
		return errors.New("not connected")
	}
	values := map[string]string{
		"sensors/temperature":  formatFloat(s.Sensors.Temperature),
		"sensors/humidity":     formatFloat(s.Sensors.Humidity),
		"sensors/moisture":     formatFloat(s.Sensors.Moisture),
		"actuators/pump":       strconv.FormatBool(s.Actuators.Pump),
		"actuators/fan":        strconv.FormatBool(s.Actuators.Fan),
		"actuators/lights":     strconv.FormatBool(s.Actuators.Lights),
		"actuators/humidifier": strconv.FormatBool(s.Actuators.Humidifier),
		"system/load1":         formatFloat(s.System.Load1),
		"system/mem_free_kb":   strconv.FormatUint(s.System.MemFreeKb, 10),
		"system/uptime":        formatFloat(s.System.Uptime),
	}
	for key, value := range values {
		if err := self.publish(statePrefix+key, value); err != nil {
			return err
		}
	}
	return nil
}

// PullConfig assembles a delta from the retained config values received so
// far. Unparseable values are skipped.
func (self *Client) PullConfig() (*config.Delta, error) {
	if self.client == nil || !self.client.IsConnected() {
		return nil, errors.New("not connected")
	}
	self.mu.Lock()
	values := make(map[string]string, len(self.received))
	for k, v := range self.received {
		values[k] = v
	}
	self.mu.Unlock()
	return deltaFromValues(values), nil
}

func deltaFromValues(values map[string]string) *config.Delta {
	delta := &config.Delta{}
	fields := map[string]**float64{
		"temp_high":       &delta.TempHigh,
		"temp_low":        &delta.TempLow,
		"hum_low":         &delta.HumLow,
		"hum_high":        &delta.HumHigh,
		"moisture_dry":    &delta.MoistureDry,
		"moisture_target": &delta.MoistureTarget,
	}
	for key, field := range fields {
		if raw, ok := values[key]; ok {
			if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
				*field = &v
			}
		}
	}
	return delta
}

func (self *Client) Close() {
	if self.client != nil && self.client.IsConnected() {
		self.client.Disconnect(250)
	}
}
