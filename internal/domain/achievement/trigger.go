package achievement

import (
	"context"

	"github.com/playden-lab/backend/pkg/xcontext"
)

// Trigger is notified with the number of active relationships of a subject
// right after one of them is established.
type Trigger interface {
	NotifyCountReached(ctx context.Context, subjectID int64, kind string, count int64) error
}

// Notify calls the trigger. Its failure never fails the caller, it is only
// logged.
func Notify(ctx context.Context, trigger Trigger, subjectID int64, kind string, count int64) {
	if trigger == nil {
		return
	}

	if err := trigger.NotifyCountReached(ctx, subjectID, kind, count); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot notify %s count of %d: %v", kind, subjectID, err)
	}
}
