package attachment_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"complaint-desk/internal/config"
	"complaint-desk/internal/domain"
	"complaint-desk/internal/mocks"
	"complaint-desk/internal/service/attachment"
	"complaint-desk/internal/validation"
)

func testConfig() *config.Config {
	return &config.Config{
		MinIOBucket:            "complaint-attachments",
		MinIOPublicEndpoint:    "files.rnit.rw",
		MinIOPublicUseSSL:      true,
		AttachmentMaxBytes:     1024,
		AttachmentMaxFiles:     3,
		AttachmentAllowedTypes: []string{"application/pdf", "text/plain", "image/png"},
	}
}

func fileOf(name, body, declared string) attachment.Upload {
	return attachment.Upload{
		Name:        name,
		Size:        int64(len(body)),
		ContentType: declared,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func TestAttachmentService_Check(t *testing.T) {
	t.Run("Detects type from content", func(t *testing.T) {
		svc := attachment.NewService(new(mocks.ObjectStore), testConfig())

		checked, err := svc.Check([]attachment.Upload{
			fileOf("report.pdf", "%PDF-1.4\n%test", "application/octet-stream"),
			fileOf("notes.txt", "customer called twice", ""),
		})

		require.NoError(t, err)
		require.Len(t, checked, 2)
		assert.Equal(t, "application/pdf", checked[0].ContentType)
		assert.Equal(t, "text/plain", checked[1].ContentType)
	})

	t.Run("Rejects disallowed and oversized files together", func(t *testing.T) {
		svc := attachment.NewService(new(mocks.ObjectStore), testConfig())

		_, err := svc.Check([]attachment.Upload{
			fileOf("setup.exe", "MZ\x90\x00\x03\x00\x00\x00\x04\x00\x00\x00\xff\xff", "application/pdf"),
			fileOf("big.txt", strings.Repeat("a", 2048), "text/plain"),
		})

		require.Error(t, err)
		assert.True(t, validation.IsValidation(err))
		assert.Contains(t, err.Error(), "setup.exe has unsupported type")
		assert.Contains(t, err.Error(), "big.txt exceeds the 1024 byte limit")
	})

	t.Run("Rejects empty files before sniffing", func(t *testing.T) {
		svc := attachment.NewService(new(mocks.ObjectStore), testConfig())
		empty := fileOf("blank.txt", "", "text/plain")
		empty.Open = func() (io.ReadCloser, error) {
			t.Fatal("empty file must not be opened")
			return nil, nil
		}

		_, err := svc.Check([]attachment.Upload{empty, fileOf("notes.txt", "ok", "")})

		require.Error(t, err)
		assert.True(t, validation.IsValidation(err))
		assert.Equal(t, "blank.txt is empty", err.Error())
	})

	t.Run("Too many files", func(t *testing.T) {
		svc := attachment.NewService(new(mocks.ObjectStore), testConfig())
		f := fileOf("a.txt", "hello", "text/plain")

		_, err := svc.Check([]attachment.Upload{f, f, f, f})
		assert.ErrorContains(t, err, "at most 3 attachments are allowed")
	})

	t.Run("Required attachment missing", func(t *testing.T) {
		cfg := testConfig()
		cfg.AttachmentRequired = true
		svc := attachment.NewService(new(mocks.ObjectStore), cfg)

		_, err := svc.Check(nil)
		assert.ErrorContains(t, err, "at least one attachment is required")
	})
}

func TestAttachmentService_Store(t *testing.T) {
	ctx := context.Background()
	complaintID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		store := new(mocks.ObjectStore)
		svc := attachment.NewService(store, testConfig())

		store.On("PutObject", ctx, "complaint-attachments",
			mock.MatchedBy(func(key string) bool {
				return strings.HasPrefix(key, "complaints/"+complaintID.String()+"/") && strings.HasSuffix(key, "-my_file__1_.pdf")
			}),
			mock.Anything, int64(5), minio.PutObjectOptions{ContentType: "application/pdf"},
		).Return(minio.UploadInfo{}, nil).Once()

		f := fileOf("../my file (1).pdf", "%PDF-", "")
		f.ContentType = "application/pdf"
		atts, err := svc.Store(ctx, complaintID, []attachment.Upload{f})

		require.NoError(t, err)
		require.Len(t, atts, 1)
		assert.Equal(t, complaintID, atts[0].ComplaintID)
		assert.Equal(t, "../my file (1).pdf", atts[0].OriginalFilename)
		assert.True(t, strings.HasPrefix(atts[0].FileURL, "https://files.rnit.rw/complaint-attachments/complaints/"))
		store.AssertExpectations(t)
	})

	t.Run("Removes earlier uploads when one fails", func(t *testing.T) {
		store := new(mocks.ObjectStore)
		svc := attachment.NewService(store, testConfig())

		var firstKey string
		store.On("PutObject", ctx, "complaint-attachments", mock.MatchedBy(func(key string) bool {
			return strings.HasSuffix(key, "-a.txt")
		}), mock.Anything, int64(1), mock.Anything).
			Run(func(args mock.Arguments) { firstKey = args.String(2) }).
			Return(minio.UploadInfo{}, nil).Once()
		store.On("PutObject", ctx, "complaint-attachments", mock.MatchedBy(func(key string) bool {
			return strings.HasSuffix(key, "-b.txt")
		}), mock.Anything, int64(1), mock.Anything).
			Return(minio.UploadInfo{}, errors.New("bucket unavailable")).Once()
		store.On("RemoveObject", ctx, "complaint-attachments", mock.MatchedBy(func(key string) bool {
			return key == firstKey
		}), minio.RemoveObjectOptions{}).Return(nil).Once()

		atts, err := svc.Store(ctx, complaintID, []attachment.Upload{
			fileOf("a.txt", "a", "text/plain"),
			fileOf("b.txt", "b", "text/plain"),
		})

		assert.ErrorContains(t, err, "bucket unavailable")
		assert.Nil(t, atts)
		store.AssertExpectations(t)
	})
}

func TestAttachmentService_Remove(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.ObjectStore)
	svc := attachment.NewService(store, testConfig())

	store.On("RemoveObject", ctx, "complaint-attachments", "k1", minio.RemoveObjectOptions{}).Return(errors.New("gone")).Once()
	store.On("RemoveObject", ctx, "complaint-attachments", "k2", minio.RemoveObjectOptions{}).Return(nil).Once()

	err := svc.Remove(ctx, []domain.Attachment{{Filename: "k1"}, {Filename: "k2"}})

	assert.ErrorContains(t, err, "remove k1: gone")
	store.AssertExpectations(t)
}
