package service

import (
	"context"
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/export"
	"github.com/ilyadubrovsky/notenmeister/internal/grading"
)

type Report interface {
	Summary(ctx context.Context, userID int64) (grading.Summary, error)
	Export(ctx context.Context, userID int64, format export.Format, now time.Time) (*export.File, error)
}
