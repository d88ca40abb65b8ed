package service

import (
	"context"
	"time"
)

type Reminders interface {
	Start() error
	Stop()
	// Run reminds about the goals due within the configured window and returns
	// the number of sent reminders.
	Run(ctx context.Context, now time.Time) (int, error)
}
