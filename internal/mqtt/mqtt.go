package mqtt

import (
	"fmt"
	"os"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

const timeout = 5 * time.Second

// Target identifies a broker topic and the connection settings for it.
type Target struct {
	Broker   string
	Topic    string
	ClientID string // empty picks "moonicon-<pid>"
	QoS      byte
	Retain   bool
	Username string
	Password string
}

// ClientOptions returns the paho options for t.
func (t Target) ClientOptions() *pahomqtt.ClientOptions {
	id := t.ClientID
	if id == "" {
		id = fmt.Sprintf("moonicon-%d", os.Getpid())
	}
	opts := pahomqtt.NewClientOptions().
		AddBroker(t.Broker).
		SetClientID(id).
		SetConnectTimeout(timeout).
		SetAutoReconnect(false)

	if t.Username != "" {
		opts.SetUsername(t.Username)
	}
	if t.Password != "" {
		opts.SetPassword(os.ExpandEnv(t.Password))
	}
	return opts
}

// Publish connects to the broker, publishes payload to the topic, and
// disconnects. Each invocation creates a fresh connection.
func Publish(t Target, payload []byte) error {
	if t.QoS > 2 {
		return fmt.Errorf("mqtt: invalid qos %d", t.QoS)
	}
	client := pahomqtt.NewClient(t.ClientOptions())
	tok := client.Connect()
	if !tok.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt: connect timeout")
	}
	if tok.Error() != nil {
		return fmt.Errorf("mqtt: connect: %w", tok.Error())
	}
	defer client.Disconnect(250)

	pub := client.Publish(t.Topic, t.QoS, t.Retain, payload)
	if !pub.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt: publish timeout")
	}
	if pub.Error() != nil {
		return fmt.Errorf("mqtt: publish: %w", pub.Error())
	}
	return nil
}
