package eventlog

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// MQTTSink mirrors log lines to an MQTT topic for remote diagnostics.
// The control subsystem itself has no network surface; this sink is an
// optional tap on the same lines the file sink receives, and a broker
// outage costs nothing but the mirror.
type MQTTSink struct {
	client paho.Client
	topic  string
}

// NewMQTTSink connects to the broker and returns a sink publishing to
// topic.
func NewMQTTSink(broker, topic string) (*MQTTSink, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("doser-control").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connect to %s: timeout", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", broker, err)
	}
	return &MQTTSink{client: client, topic: topic}, nil
}

// Append publishes each line as its own message, QoS 0: a dropped mirror
// line is no worse than a dropped buffer entry.
func (s *MQTTSink) Append(lines []string) error {
	for _, line := range lines {
		token := s.client.Publish(s.topic, 0, false, line)
		if !token.WaitTimeout(5 * time.Second) {
			return fmt.Errorf("publish timeout")
		}
		if err := token.Error(); err != nil {
			return fmt.Errorf("publish: %w", err)
		}
	}
	return nil
}

func (s *MQTTSink) Close() error {
	s.client.Disconnect(1000)
	return nil
}
