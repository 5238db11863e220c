package testutil

import (
	"context"
)

// MockTrigger records every notified count.
type MockTrigger struct {
	NotifyCountReachedFunc func(ctx context.Context, subjectID int64, kind string, count int64) error

	Calls []TriggerCall
}

type TriggerCall struct {
	SubjectID int64
	Kind      string
	Count     int64
}

func (m *MockTrigger) NotifyCountReached(ctx context.Context, subjectID int64, kind string, count int64) error {
	m.Calls = append(m.Calls, TriggerCall{SubjectID: subjectID, Kind: kind, Count: count})
	if m.NotifyCountReachedFunc != nil {
		return m.NotifyCountReachedFunc(ctx, subjectID, kind, count)
	}

	return nil
}
