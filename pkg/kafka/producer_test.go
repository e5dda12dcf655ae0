package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	assert.Error(t, err)

	p, err := NewProducer(WithBrokers([]string{"localhost:9092"}), WithCompression("zstd"), WithClientID("nextworth-test"))
	require.NoError(t, err)
	w := p.writer.(*kafka.Writer)
	assert.Equal(t, kafka.Zstd, w.Compression)
	assert.Equal(t, kafka.RequiredAcks(1), w.RequiredAcks)
	assert.Equal(t, "nextworth-test", w.Transport.(*kafka.Transport).ClientID)
}

func TestNewProducerRejectsBadSettings(t *testing.T) {
	brokers := WithBrokers([]string{"localhost:9092"})

	_, err := NewProducer(brokers, WithRequiredAcks(2))
	assert.ErrorContains(t, err, "required acks")

	_, err = NewProducer(brokers, WithCompression("brotli"))
	assert.ErrorContains(t, err, "unknown compression")
}

func TestPublishMessageEncodesJSON(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w}

	err := p.PublishMessage(context.Background(), "nextworth.logs", map[string]int{"count": 3})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "nextworth.logs", w.msgs[0].Topic)

	var got map[string]int
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, 3, got["count"])

	require.NoError(t, p.PublishMessage(context.Background(), "raw", []byte("abc")))
	assert.Equal(t, []byte("abc"), w.msgs[1].Value)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishMessageWrapsWriterError(t *testing.T) {
	cause := errors.New("broker down")
	p := &Producer{writer: &fakeWriter{err: cause}}
	err := p.PublishMessage(context.Background(), "t", "x")
	assert.ErrorIs(t, err, cause)
}
