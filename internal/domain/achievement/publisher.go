package achievement

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/playden-lab/backend/pkg/pubsub"
	"github.com/playden-lab/backend/pkg/xcontext"
)

type RelationCountEvent struct {
	SubjectID int64  `json:"subject_id"`
	Kind      string `json:"kind"`
	Count     int64  `json:"count"`
}

// Publisher defers unlocking to the achievement subscriber.
type Publisher struct {
	publisher pubsub.Publisher
	topic     string
}

func NewPublisher(publisher pubsub.Publisher, topic string) *Publisher {
	return &Publisher{publisher: publisher, topic: topic}
}

func (p *Publisher) NotifyCountReached(ctx context.Context, subjectID int64, kind string, count int64) error {
	b, err := json.Marshal(RelationCountEvent{SubjectID: subjectID, Kind: kind, Count: count})
	if err != nil {
		return err
	}

	// Events of a subject share a partition to keep their order.
	return p.publisher.Publish(ctx, p.topic, &pubsub.Pack{
		Key: []byte(strconv.FormatInt(subjectID, 10)),
		Msg: b,
	})
}

// Subscribe handles the events published by Publisher.
func (m *Manager) Subscribe(ctx context.Context, topic string, pack *pubsub.Pack, t time.Time) {
	var event RelationCountEvent
	if err := json.Unmarshal(pack.Msg, &event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal %s event: %v", topic, err)
		return
	}

	if err := m.NotifyCountReached(ctx, event.SubjectID, event.Kind, event.Count); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unlock achievements of user %d: %v", event.SubjectID, err)
	}
}
