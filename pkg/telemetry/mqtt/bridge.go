package mqtt

// Bridge republishes every telemetry frame emitted on the serial link
// to the broker, so fleet tooling can watch devices without holding the
// serial port. It implements engine.TelemetrySink.
type Bridge struct {
	Queue *Queue
	Topic string
}

// NewBridge creates a Bridge publishing frames of one device.
func NewBridge(brokerURL, deviceID string) (*Bridge, error) {
	q, err := NewQueueFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return &Bridge{Queue: q, Topic: deviceID + "/telemetry"}, nil
}

// Connect connects the underlying client.
func (b *Bridge) Connect() error {
	token := b.Queue.Connect()
	token.Wait()
	return token.Error()
}

// Close implements io.Closer.
func (b *Bridge) Close() error {
	return b.Queue.Close()
}

// Publish implements engine.TelemetrySink. Publishing is asynchronous:
// a slow broker never stalls the engine loop.
func (b *Bridge) Publish(frame string) error {
	b.Queue.Pub(b.Topic, []byte(frame))
	return nil
}
