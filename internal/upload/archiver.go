package upload

import (
	"bytes"
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hackwave-community/platform-api/internal/hash"
)

var tracer = otel.Tracer(
	"github.com/hackwave-community/platform-api/internal/upload",
)

//go:generate mockgen -destination ./mock/mock.go -package mock . Archiver

// Archiver persists snapshots of records that are about to be deleted.
type Archiver interface {
	// Create / Overwrite object contents by name
	Archive(ctx context.Context, reader io.ReadSeeker, length int64, object string) error
	// Check if an object exists (dedupe aid, not authoritative existence)
	//
	// May always return false
	Exists(ctx context.Context, object string) (bool, error)
	// Identifier for where snapshots land. Useful for audit lines.
	StoreIdentifier(ctx context.Context) (string, error)
}

// Snapshot stores a buffer under the hash of its contents (CAS) and
// returns the object name. Identical snapshots are stored once.
func Snapshot(ctx context.Context, a Archiver, payload []byte) (string, error) {
	ctx, span := tracer.Start(ctx, "Snapshot", trace.WithAttributes(
		attribute.Int("length", len(payload)),
	))
	defer span.End()

	object := hash.Buffer(payload) + ".json"

	exists, err := a.Exists(ctx, object)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to check if snapshot exists")
		return "", err
	}

	if exists {
		span.AddEvent("found existing snapshot")
		return object, nil
	}

	err = a.Archive(ctx, bytes.NewReader(payload), int64(len(payload)), object)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to store snapshot")
		return "", err
	}

	span.AddEvent("stored snapshot", trace.WithAttributes(
		attribute.String("object", object),
	))
	return object, nil
}
