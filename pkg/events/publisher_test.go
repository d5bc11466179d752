package events

import (
	"context"
	"encoding/json"
	"testing"
)

type recordingPublisher struct {
	eventType string
	key       string
	payload   []byte
}

func (r *recordingPublisher) Publish(_ context.Context, eventType string, payload []byte, key string) error {
	r.eventType, r.payload, r.key = eventType, payload, key
	return nil
}

func (r *recordingPublisher) Close() error { return nil }

func TestPublishReelIntent(t *testing.T) {
	t.Parallel()

	rec := &recordingPublisher{}
	err := PublishReelIntent(context.Background(), rec, ReelIntent{
		Type:        ReelDeleteRequested,
		ReelID:      "r1",
		SellerID:    "s1",
		RequestedBy: "u1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if rec.eventType != ReelDeleteRequested || rec.key != "s1" {
		t.Fatalf("published %s keyed %s", rec.eventType, rec.key)
	}

	var got ReelIntent
	if err := json.Unmarshal(rec.payload, &got); err != nil {
		t.Fatal(err)
	}
	if got.ReelID != "r1" || got.RequestedAt.IsZero() {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestKafkaPublisherTopicMapping(t *testing.T) {
	t.Parallel()

	if _, err := NewKafkaPublisher(nil, nil); err == nil {
		t.Fatalf("expected error without brokers")
	}
	p, err := NewKafkaPublisher([]string{"localhost:9092"}, map[string]string{ReelDeleteRequested: "media.reel-intents"})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	if got := p.TopicFor(ReelDeleteRequested); got != "media.reel-intents" {
		t.Fatalf("mapped topic = %q", got)
	}
	if got := p.TopicFor(ReelEditRequested); got != ReelEditRequested {
		t.Fatalf("unmapped topic = %q", got)
	}
}
