package stores

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"portfolio-views/internal/shared/filestorages"
	"portfolio-views/internal/shared/filestorages/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var uploadKeyPattern = regexp.MustCompile(`^uploads/profiles/[0-9A-Z]{26}\.png$`)

func TestUploadStore_Save(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewUploadStore(mockFileStorage)
	ctx := context.Background()

	var storedKey string
	mockFileStorage.EXPECT().
		Put(ctx, gomock.Any(), gomock.Any(), filestorages.PutOptions{AllowOverwrite: false}).
		DoAndReturn(func(_ context.Context, key string, r io.Reader, _ filestorages.PutOptions) (*filestorages.PutResult, error) {
			storedKey = key
			content, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "png bytes", string(content))
			return &filestorages.PutResult{FileKey: key}, nil
		})

	urlPath, err := store.Save(ctx, UploadFolderProfiles, "Avatar.PNG", strings.NewReader("png bytes"))

	require.NoError(t, err)
	assert.Regexp(t, uploadKeyPattern, storedKey)
	assert.Equal(t, "/"+storedKey, urlPath)
}

func TestUploadStore_Save_StorageError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewUploadStore(mockFileStorage)
	ctx := context.Background()
	storageErr := errors.New("disk full")

	mockFileStorage.EXPECT().
		Put(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, storageErr)

	urlPath, err := store.Save(ctx, UploadFolderResumes, "cv.pdf", strings.NewReader("pdf"))

	assert.Empty(t, urlPath)
	assert.ErrorIs(t, err, storageErr)
}

func TestUploadStore_Open(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		urlPath    string
		wantKey    string
		storageErr error
		wantErr    error
	}{
		{name: "url path", urlPath: "/uploads/profiles/01ARZ3NDEKTSV4RRFFQ69G5FAV.png", wantKey: "uploads/profiles/01ARZ3NDEKTSV4RRFFQ69G5FAV.png"},
		{name: "path below uploads", urlPath: "profiles/01ARZ3NDEKTSV4RRFFQ69G5FAV.png", wantKey: "uploads/profiles/01ARZ3NDEKTSV4RRFFQ69G5FAV.png"},
		{name: "missing file", urlPath: "/uploads/resumes/01ARZ3NDEKTSV4RRFFQ69G5FAV.pdf", wantKey: "uploads/resumes/01ARZ3NDEKTSV4RRFFQ69G5FAV.pdf", storageErr: filestorages.ErrFileNotFound, wantErr: ErrUploadNotFound},
		{name: "dot segments stay inside uploads", urlPath: "/uploads/../portfolios/ada.json", wantErr: ErrUploadNotFound},
		{name: "name not generated by save", urlPath: "/uploads/profiles/avatar.png", wantErr: ErrUploadNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFileStorage := mocks.NewMockFileStorage(ctrl)
			store := NewUploadStore(mockFileStorage)
			ctx := context.Background()

			switch {
			case tt.wantKey == "":
				// rejected before storage is touched
			case tt.storageErr != nil:
				mockFileStorage.EXPECT().Get(ctx, tt.wantKey).Return(nil, tt.storageErr)
			default:
				mockFileStorage.EXPECT().Get(ctx, tt.wantKey).Return(io.NopCloser(strings.NewReader("data")), nil)
			}

			readCloser, err := store.Open(ctx, tt.urlPath)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer readCloser.Close()
			content, err := io.ReadAll(readCloser)
			require.NoError(t, err)
			assert.Equal(t, "data", string(content))
		})
	}
}

func TestUploadExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".png", UploadExtension("Avatar.PNG"))
	assert.Equal(t, ".docx", UploadExtension("cv.final.docx"))
	assert.Equal(t, "", UploadExtension("README"))
}
