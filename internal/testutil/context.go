package testutil

import (
	"context"
	"time"

	"github.com/flexprice/tuition/internal/types"
)

// timeNow is the wall clock used for soft delete stamps
var timeNow = func() time.Time { return time.Now().UTC() }

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}
