package voice

// MockTranscriber is a test implementation of Transcriber fed by hand.
type MockTranscriber struct {
	ch     chan string
	closed bool
}

// NewMockTranscriber creates a mock with a buffered transcript channel.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{ch: make(chan string, 16)}
}

// Start returns the transcript channel.
func (m *MockTranscriber) Start() (<-chan string, error) {
	return m.ch, nil
}

// Emit pushes one transcript fragment to the consumer.
func (m *MockTranscriber) Emit(text string) {
	m.ch <- text
}

// Close closes the transcript channel.
func (m *MockTranscriber) Close() error {
	if !m.closed {
		m.closed = true
		close(m.ch)
	}
	return nil
}
