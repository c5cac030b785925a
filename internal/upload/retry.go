package upload

import (
	"context"
	"io"
	"time"

	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"
)

// Ensure RetryArchiver implements Archiver interface.
var _ Archiver = (*RetryArchiver)(nil)

// Meta archiver that wraps operations in backoff loops
type RetryArchiver struct {
	archiver Archiver
	backoff  func() retry.Backoff
}

func NewRetryArchiverBackoff(archiver Archiver, backoff func() retry.Backoff) *RetryArchiver {
	return &RetryArchiver{
		archiver: archiver,
		backoff:  backoff,
	}
}

// For non latency sensitive archiving
func NewRetryArchiver(archiver Archiver) *RetryArchiver {
	return &RetryArchiver{
		archiver: archiver,
		backoff: func() retry.Backoff {
			b := retry.NewExponential(time.Second)
			b = retry.WithMaxDuration(time.Second*120, b)
			return b
		},
	}
}

func (r *RetryArchiver) Archive(
	ctx context.Context,
	reader io.ReadSeeker,
	length int64,
	object string,
) error {
	ctx, span := tracer.Start(ctx, "RetryArchiver.Archive")
	defer span.End()

	err := retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		//nolint:govet // shadow: intentionally shadow ctx and span to avoid using the incorrect one.
		ctx, span := tracer.Start(ctx, "RetryArchiver.Archive.Retry")
		defer span.End()

		if _, err := reader.Seek(0, io.SeekStart); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to seek to start of snapshot")
			return err
		}

		if err := r.archiver.Archive(ctx, reader, length, object); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to archive")
			return retry.RetryableError(err)
		}

		span.RecordError(nil)
		span.SetStatus(codes.Ok, "successfully retried")
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to archive")
		return err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "archived object")
	return nil
}

func (r *RetryArchiver) Exists(ctx context.Context, object string) (bool, error) {
	ctx, span := tracer.Start(ctx, "RetryArchiver.Exists")
	defer span.End()

	var exists bool
	err := retry.Do(ctx, r.backoff(), func(rctx context.Context) error {
		//nolint:govet // shadow: intentionally shadow ctx and span to avoid using the incorrect one.
		ctx, span := tracer.Start(rctx, "RetryArchiver.Exists.Retry")
		defer span.End()

		var err error
		exists, err = r.archiver.Exists(ctx, object)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to get exists")
			return retry.RetryableError(err)
		}

		span.RecordError(nil)
		span.SetStatus(codes.Ok, "successfully retried")
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get exists")
		return false, err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "got exists")
	return exists, nil
}

func (r *RetryArchiver) StoreIdentifier(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "RetryArchiver.StoreIdentifier")
	defer span.End()

	var ident string
	err := retry.Do(ctx, r.backoff(), func(rctx context.Context) error {
		//nolint:govet // shadow: intentionally shadow ctx and span to avoid using the incorrect one.
		ctx, span := tracer.Start(rctx, "RetryArchiver.StoreIdentifier.Retry")
		defer span.End()

		var err error
		ident, err = r.archiver.StoreIdentifier(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to get store identifier")
			return retry.RetryableError(err)
		}

		span.RecordError(nil)
		span.SetStatus(codes.Ok, "successfully retried")
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get store identifier")
		return "", err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "got store identifier")
	return ident, nil
}
