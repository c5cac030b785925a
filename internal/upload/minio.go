package upload

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Ensure MinioArchiver implements Archiver interface.
var _ Archiver = (*MinioArchiver)(nil)

// Minio (S3) backed archiver
type MinioArchiver struct {
	client *minio.Client
	bucket string
}

func NewMinioArchiver(
	endpoint, id, secret string,
	ssl bool,
	bucket string,
) (*MinioArchiver, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(id, secret, ""),
		Secure: ssl,
	})
	if err != nil {
		return nil, err
	}

	return &MinioArchiver{
		client: client,
		bucket: bucket,
	}, nil
}

func NewMinioArchiverFromClient(client *minio.Client, bucket string) *MinioArchiver {
	return &MinioArchiver{
		client: client,
		bucket: bucket,
	}
}

func (a *MinioArchiver) Archive(
	ctx context.Context,
	reader io.ReadSeeker,
	length int64,
	object string,
) error {
	ctx, span := tracer.Start(ctx, "MinioArchiver.Archive", trace.WithAttributes(
		attribute.String("object", object),
		attribute.Int64("length", length),
	))
	defer span.End()

	_, err := a.client.PutObject(ctx, a.bucket, object, reader, length, minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to put object")
		return err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "put object")
	return nil
}

func (a *MinioArchiver) Exists(ctx context.Context, object string) (bool, error) {
	ctx, span := tracer.Start(ctx, "MinioArchiver.Exists", trace.WithAttributes(
		attribute.String("object", object),
	))
	defer span.End()

	_, err := a.client.StatObject(ctx, a.bucket, object, minio.StatObjectOptions{})
	if err != nil {
		errResponse := minio.ToErrorResponse(err)
		if errResponse.Code == "NoSuchKey" {
			span.RecordError(nil)
			span.SetStatus(codes.Ok, "did not find object")
			return false, nil
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to stat object")
		return false, err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "statted object")
	return true, nil
}

func (a *MinioArchiver) StoreIdentifier(_ context.Context) (string, error) {
	return a.bucket, nil
}
