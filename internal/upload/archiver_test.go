package upload_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hackwave-community/platform-api/internal/hash"
	"github.com/hackwave-community/platform-api/internal/upload"
	mockupload "github.com/hackwave-community/platform-api/internal/upload/mock"
)

func TestSnapshot(t *testing.T) {
	payload := []byte(`{"title":"carbon tracker"}`)
	object := hash.Buffer(payload) + ".json"

	t.Run("StoresNewObject", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		a := mockupload.NewMockArchiver(ctrl)

		a.EXPECT().Exists(gomock.Any(), gomock.Eq(object)).Return(false, nil).Times(1)
		a.EXPECT().
			Archive(gomock.Any(), gomock.Any(), gomock.Eq(int64(len(payload))), gomock.Eq(object)).
			Return(nil).
			Times(1)

		actual, err := upload.Snapshot(ctx, a, payload)
		require.NoError(t, err, "failed to store snapshot")

		assert.Equal(t, object, actual, "object name not content addressed")
	})

	t.Run("DedupesExistingObject", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		a := mockupload.NewMockArchiver(ctrl)

		a.EXPECT().Exists(gomock.Any(), gomock.Eq(object)).Return(true, nil).Times(1)

		actual, err := upload.Snapshot(ctx, a, payload)
		require.NoError(t, err, "failed to dedupe snapshot")

		assert.Equal(t, object, actual)
	})

	t.Run("ArchiveError", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		a := mockupload.NewMockArchiver(ctrl)

		a.EXPECT().Exists(gomock.Any(), gomock.Eq(object)).Return(false, nil).Times(1)
		a.EXPECT().
			Archive(gomock.Any(), gomock.Any(), gomock.Eq(int64(len(payload))), gomock.Eq(object)).
			Return(errors.New("expected error")).
			Times(1)

		_, err := upload.Snapshot(ctx, a, payload)

		require.Error(t, err, "somehow stored snapshot")
	})
}
