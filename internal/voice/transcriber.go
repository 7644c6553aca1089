package voice

// Transcriber is an opaque speech-to-text provider. Start returns a channel
// of transcript fragments (partial or final, already trimmed); the channel
// closes when the provider shuts down.
type Transcriber interface {
	Start() (<-chan string, error)
	Close() error
}
