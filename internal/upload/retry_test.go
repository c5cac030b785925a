package upload_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hackwave-community/platform-api/internal/upload"
	mockupload "github.com/hackwave-community/platform-api/internal/upload/mock"
)

func quickBackoff() retry.Backoff {
	b := retry.NewConstant(time.Millisecond * 10)
	b = retry.WithMaxRetries(3, b)
	return b
}

func TestStoreIdentifier(t *testing.T) {
	t.Run("NoError", func(t *testing.T) {
		ctx := context.Background()
		expected := "identifier"

		ctrl := gomock.NewController(t)
		a := mockupload.NewMockArchiver(ctrl)

		a.EXPECT().StoreIdentifier(gomock.Any()).Return(expected, nil).Times(1)

		r := upload.NewRetryArchiver(a)
		actual, err := r.StoreIdentifier(ctx)

		require.NoError(t, err, "failed to get store identifier")

		assert.Equal(t, expected, actual, "not matching identifier")
	})

	t.Run("ErrorAfter1Try", func(t *testing.T) {
		ctx := context.Background()
		expected := "identifier"

		ctrl := gomock.NewController(t)
		a := mockupload.NewMockArchiver(ctrl)

		counter := new(int)
		a.EXPECT().
			StoreIdentifier(gomock.Any()).
			DoAndReturn(func(_ context.Context) (string, error) {
				*counter++
				if *counter == 2 {
					return expected, nil
				}

				return "", errors.New("expected error")
			}).
			Times(2)

		r := upload.NewRetryArchiverBackoff(a, quickBackoff)
		actual, err := r.StoreIdentifier(ctx)

		require.NoError(t, err, "failed to get store identifier")

		assert.Equal(t, expected, actual, "not matching identifier")
	})

	t.Run("Error", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		a := mockupload.NewMockArchiver(ctrl)

		a.EXPECT().StoreIdentifier(gomock.Any()).Return("", errors.New("expected error")).Times(4)

		r := upload.NewRetryArchiverBackoff(a, quickBackoff)
		_, err := r.StoreIdentifier(ctx)

		require.Error(t, err, "somehow did not get error")
	})
}

func TestArchive(t *testing.T) {
	t.Run("NoError", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		a := mockupload.NewMockArchiver(ctrl)

		reader := strings.NewReader("hello there")
		object := "object.json"

		a.EXPECT().
			Archive(gomock.Any(), gomock.Any(), gomock.Eq(int64(reader.Len())), gomock.Eq(object)).
			Return(nil).
			Times(1)

		r := upload.NewRetryArchiver(a)
		err := r.Archive(ctx, reader, int64(reader.Len()), object)

		require.NoError(t, err, "failed to archive")
	})

	t.Run("ErrorAfter1Try", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		a := mockupload.NewMockArchiver(ctrl)

		reader := strings.NewReader("hello there")
		object := "object.json"

		counter := new(int)
		a.EXPECT().
			Archive(gomock.Any(), gomock.Any(), gomock.Eq(int64(reader.Len())), gomock.Eq(object)).
			DoAndReturn(func(_ context.Context, _ io.ReadSeeker, _ int64, _ string) error {
				*counter++
				if *counter == 2 {
					return nil
				}

				return errors.New("expected error")
			}).
			Times(2)

		r := upload.NewRetryArchiverBackoff(a, quickBackoff)
		err := r.Archive(ctx, reader, int64(reader.Len()), object)

		require.NoError(t, err, "failed to archive")
	})

	t.Run("RewindsBetweenAttempts", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		a := mockupload.NewMockArchiver(ctrl)

		reader := strings.NewReader("hello there")
		object := "object.json"

		counter := new(int)
		a.EXPECT().
			Archive(gomock.Any(), gomock.Any(), gomock.Eq(int64(reader.Len())), gomock.Eq(object)).
			DoAndReturn(func(_ context.Context, body io.ReadSeeker, _ int64, _ string) error {
				*counter++

				payload, err := io.ReadAll(body)
				require.NoError(t, err, "failed to read snapshot body")
				assert.Equal(t, "hello there", string(payload), "body not rewound")

				if *counter == 2 {
					return nil
				}

				return errors.New("expected error")
			}).
			Times(2)

		r := upload.NewRetryArchiverBackoff(a, quickBackoff)
		err := r.Archive(ctx, reader, int64(reader.Len()), object)

		require.NoError(t, err, "failed to archive")
	})

	t.Run("Error", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		a := mockupload.NewMockArchiver(ctrl)

		reader := strings.NewReader("hello there")
		object := "object.json"

		a.EXPECT().
			Archive(gomock.Any(), gomock.Any(), gomock.Eq(int64(reader.Len())), gomock.Eq(object)).
			Return(errors.New("expected error")).
			Times(4)

		r := upload.NewRetryArchiverBackoff(a, quickBackoff)
		err := r.Archive(ctx, reader, int64(reader.Len()), object)

		require.Error(t, err, "somehow archived")
	})
}

func TestExists(t *testing.T) {
	t.Run("NoErrorExists", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		a := mockupload.NewMockArchiver(ctrl)

		object := "object.json"
		expected := true

		a.EXPECT().Exists(gomock.Any(), gomock.Eq(object)).Return(expected, nil).Times(1)

		r := upload.NewRetryArchiver(a)
		actual, err := r.Exists(ctx, object)

		require.NoError(t, err, "failed to get exists")

		assert.Equal(t, expected, actual, "did not get expected")
	})

	t.Run("ErrorAfter1Try", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		a := mockupload.NewMockArchiver(ctrl)

		expected := true
		object := "object.json"

		counter := new(int)
		a.EXPECT().
			Exists(gomock.Any(), gomock.Eq(object)).
			DoAndReturn(func(_ context.Context, _ string) (bool, error) {
				*counter++
				if *counter == 2 {
					return expected, nil
				}

				return false, errors.New("expected error")
			}).
			Times(2)

		r := upload.NewRetryArchiverBackoff(a, quickBackoff)
		actual, err := r.Exists(ctx, object)
		require.NoError(t, err, "failed to get exists")

		assert.Equal(t, expected, actual, "did not get expected")
	})

	t.Run("Error", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		a := mockupload.NewMockArchiver(ctrl)

		object := "object.json"

		a.EXPECT().
			Exists(gomock.Any(), gomock.Eq(object)).
			Return(false, errors.New("expected error")).
			Times(4)

		r := upload.NewRetryArchiverBackoff(a, quickBackoff)
		_, err := r.Exists(ctx, object)

		require.Error(t, err, "somehow exists")
	})
}
