// Package broadcast pushes period snapshots out to boards. The MQTT
// implementation is the real transport; Noop stands in when no broker is
// configured and in tests.
package broadcast

// Publisher delivers a payload to one topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// Noop discards everything. Boards then rely on polling the HTTP feed.
type Noop struct{}

func (Noop) Publish(topic string, payload []byte) error { return nil }
