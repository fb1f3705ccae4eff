package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	pubnub "github.com/pubnub/go/v7"
	"github.com/segmentio/kafka-go"
)

// Sink forwards a change-notification key to an external channel so remote
// dashboards learn that a collection changed. No record data rides the feed;
// consumers re-fetch through the API.
type Sink interface {
	Publish(ctx context.Context, key string) error
	Close() error
}

// Feed bridges the repository's subscriber list to the configured sinks.
// Sink failures are logged and never surface into the write path.
type Feed struct {
	sinks       []Sink
	unsubscribe func()
}

func NewFeed(repo *Repository, sinks ...Sink) *Feed {
	f := &Feed{sinks: sinks}
	f.unsubscribe = repo.Subscribe(f.forward)
	return f
}

func (f *Feed) forward(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, s := range f.sinks {
		if err := s.Publish(ctx, key); err != nil {
			slog.Warn("change feed publish failed", "key", key, "error", err)
		}
	}
}

func (f *Feed) Close() {
	f.unsubscribe()
	for _, s := range f.sinks {
		if err := s.Close(); err != nil {
			slog.Warn("change feed sink close failed", "error", err)
		}
	}
}

// PubNubSink publishes change keys to a PubNub channel.
type PubNubSink struct {
	pn      *pubnub.PubNub
	channel string
}

func NewPubNubSink(publishKey, subscribeKey, channel string) *PubNubSink {
	cfg := pubnub.NewConfigWithUserId(pubnub.UserId("eventhorizon-server"))
	cfg.PublishKey = publishKey
	cfg.SubscribeKey = subscribeKey

	return &PubNubSink{
		pn:      pubnub.NewPubNub(cfg),
		channel: channel,
	}
}

func (s *PubNubSink) Publish(ctx context.Context, key string) error {
	_, _, err := s.pn.Publish().
		Channel(s.channel).
		Message(map[string]any{
			"type": "collection_changed",
			"key":  key,
		}).
		Execute()
	return err
}

func (s *PubNubSink) Close() error {
	s.pn.Destroy()
	return nil
}

// KafkaSink appends change keys to a Kafka topic, keyed by collection so
// per-collection ordering is preserved.
type KafkaSink struct {
	writer *kafka.Writer
}

type collectionChanged struct {
	Type string    `json:"type"`
	Key  string    `json:"key"`
	TS   time.Time `json:"ts"`
}

func NewKafkaSink(broker, topic string) *KafkaSink {
	w := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 20 * time.Millisecond,
	}
	return &KafkaSink{writer: w}
}

func (s *KafkaSink) Publish(ctx context.Context, key string) error {
	payload, err := json.Marshal(collectionChanged{
		Type: "collection_changed",
		Key:  key,
		TS:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "type", Value: []byte("CollectionChanged")},
			{Key: "version", Value: []byte("1")},
		},
	})
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
