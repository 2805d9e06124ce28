package service_test

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bistro/config"
	"bistro/infras/otel/mocks"
	s3Mocks "bistro/infras/s3/mocks"
	"bistro/internal/domains/media/model/dto"
	"bistro/internal/domains/media/service"
	"bistro/shared/failure"
)

type nopFile struct {
	*strings.Reader
}

func (nopFile) Close() error { return nil }

func uploadRequest(fileName, contentType string, size int64) dto.UploadRequest {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)

	return dto.UploadRequest{
		File:    &multipart.FileHeader{Filename: fileName, Header: header, Size: size},
		Content: nopFile{strings.NewReader("payload")},
	}
}

func setup(t *testing.T) (*s3Mocks.MockS3, service.Media) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockS3 := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.External.S3.MaxUploadMB = 1

	return mockS3, service.New(mockS3, cfg, mocks.NewOtel())
}

func TestMediaService_Upload(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.UploadRequest
		setupMock func(s3 *s3Mocks.MockS3)
		wantKind  string
		wantCode  int
	}{
		{
			name: "image goes to images directory",
			req:  uploadRequest("Paneer.PNG", "image/png", 2048),
			setupMock: func(s3 *s3Mocks.MockS3) {
				s3.EXPECT().
					UploadFile(gomock.Any(), "images", gomock.Any(), "image/png", gomock.Any()).
					DoAndReturn(func(_ context.Context, _, fileName, _ string, _ io.Reader) (string, error) {
						assert.True(t, strings.HasSuffix(fileName, ".png"))

						return "https://media.bistro.test/images/" + fileName, nil
					})
			},
			wantKind: dto.KindImage,
		},
		{
			name: "video goes to videos directory",
			req:  uploadRequest("tandoor.mp4", "video/mp4", 4096),
			setupMock: func(s3 *s3Mocks.MockS3) {
				s3.EXPECT().UploadFile(gomock.Any(), "videos", gomock.Any(), "video/mp4", gomock.Any()).Return("https://media.bistro.test/videos/x.mp4", nil)
			},
			wantKind: dto.KindVideo,
		},
		{
			name:      "file over the size limit",
			req:       uploadRequest("huge.jpg", "image/jpeg", 2<<20),
			setupMock: func(*s3Mocks.MockS3) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "upstream failure",
			req:  uploadRequest("naan.jpg", "image/jpeg", 100),
			setupMock: func(s3 *s3Mocks.MockS3) {
				s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("bucket unavailable"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s3, svc := setup(t)
			tt.setupMock(s3)

			res, err := svc.Upload(context.Background(), tt.req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantKind, res.Kind)
			assert.NotEmpty(t, res.URL)
		})
	}
}

func TestMediaService_Delete(t *testing.T) {
	urls := []string{"https://media.bistro.test/images/a.png", "https://media.bistro.test/images/b.png"}

	t.Run("foreign url is rejected before deleting", func(t *testing.T) {
		s3, svc := setup(t)
		s3.EXPECT().ObjectKeyFromURL(urls[0]).Return("images/a.png")
		s3.EXPECT().ObjectKeyFromURL("https://elsewhere.test/c.png").Return("")

		err := svc.Delete(context.Background(), dto.DeleteRequest{URLs: []string{urls[0], "https://elsewhere.test/c.png"}})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("reports partial failure", func(t *testing.T) {
		s3, svc := setup(t)
		s3.EXPECT().ObjectKeyFromURL(urls[0]).Return("images/a.png")
		s3.EXPECT().ObjectKeyFromURL(urls[1]).Return("images/b.png")
		s3.EXPECT().DeleteFile(gomock.Any(), "images/a.png").Return(nil)
		s3.EXPECT().DeleteFile(gomock.Any(), "images/b.png").Return(errors.New("denied"))

		err := svc.Delete(context.Background(), dto.DeleteRequest{URLs: urls})

		assert.ErrorContains(t, err, "1 of 2 files")
	})

	t.Run("deletes all", func(t *testing.T) {
		s3, svc := setup(t)
		s3.EXPECT().ObjectKeyFromURL(gomock.Any()).Return("images/a.png").Times(2)
		s3.EXPECT().DeleteFile(gomock.Any(), "images/a.png").Return(nil).Times(2)

		assert.NoError(t, svc.Delete(context.Background(), dto.DeleteRequest{URLs: urls}))
	})
}
