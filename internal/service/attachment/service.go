package attachment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"complaint-desk/internal/config"
	"complaint-desk/internal/domain"
	"complaint-desk/internal/validation"
)

// sniffLen is how much of a file is read to detect its content type.
const sniffLen = 3072

// ObjectStore is the subset of *minio.Client used for attachments.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// Upload is one file received with a complaint.
type Upload struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

type Service interface {
	// Check validates count, size and content type of every file without
	// writing anything. The returned uploads carry the detected content type.
	Check(files []Upload) ([]Upload, error)
	// Store uploads files under the complaint's prefix. On failure nothing
	// uploaded by this call is left behind.
	Store(ctx context.Context, complaintID uuid.UUID, files []Upload) ([]domain.Attachment, error)
	Remove(ctx context.Context, attachments []domain.Attachment) error
}

type service struct {
	store   ObjectStore
	cfg     *config.Config
	allowed []string
}

func NewService(store ObjectStore, cfg *config.Config) Service {
	return &service{
		store:   store,
		cfg:     cfg,
		allowed: cfg.AttachmentAllowedTypes,
	}
}

func (s *service) Check(files []Upload) ([]Upload, error) {
	verr := &validation.Error{}

	if s.cfg.AttachmentRequired && len(files) == 0 {
		verr.Add("files", "at least one attachment is required")
	}
	if s.cfg.AttachmentMaxFiles > 0 && len(files) > s.cfg.AttachmentMaxFiles {
		verr.Add("files", fmt.Sprintf("at most %d attachments are allowed", s.cfg.AttachmentMaxFiles))
	}

	checked := make([]Upload, 0, len(files))
	for _, f := range files {
		if f.Size <= 0 {
			verr.Add("files", fmt.Sprintf("%s is empty", f.Name))
			continue
		}
		if f.Size > s.cfg.AttachmentMaxBytes {
			verr.Add("files", fmt.Sprintf("%s exceeds the %d byte limit", f.Name, s.cfg.AttachmentMaxBytes))
			continue
		}

		contentType, err := s.detect(f)
		if err != nil {
			return nil, err
		}
		if !s.isAllowed(contentType) {
			verr.Add("files", fmt.Sprintf("%s has unsupported type %s", f.Name, contentType))
			continue
		}

		f.ContentType = contentType
		checked = append(checked, f)
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}
	return checked, nil
}

func (s *service) Store(ctx context.Context, complaintID uuid.UUID, files []Upload) ([]domain.Attachment, error) {
	attachments := make([]domain.Attachment, 0, len(files))

	for _, f := range files {
		key := objectKey(complaintID, f.Name)
		if err := s.put(ctx, key, f); err != nil {
			_ = s.Remove(ctx, attachments)
			return nil, fmt.Errorf("failed to upload %s: %w", f.Name, err)
		}

		attachments = append(attachments, domain.Attachment{
			ID:               uuid.New(),
			ComplaintID:      complaintID,
			Filename:         key,
			OriginalFilename: f.Name,
			FileType:         f.ContentType,
			FileSize:         f.Size,
			FileURL:          s.publicURL(key),
		})
	}

	return attachments, nil
}

func (s *service) Remove(ctx context.Context, attachments []domain.Attachment) error {
	var errs []error
	for _, a := range attachments {
		if err := s.store.RemoveObject(ctx, s.cfg.MinIOBucket, a.Filename, minio.RemoveObjectOptions{}); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", a.Filename, err))
		}
	}
	return errors.Join(errs...)
}

func (s *service) put(ctx context.Context, key string, f Upload) error {
	reader, err := f.Open()
	if err != nil {
		return err
	}
	defer reader.Close()

	_, err = s.store.PutObject(ctx, s.cfg.MinIOBucket, key, reader, f.Size, minio.PutObjectOptions{
		ContentType: f.ContentType,
	})
	return err
}

// detect sniffs the file content, trusting the declared type only when the
// content is not recognised.
func (s *service) detect(f Upload) (string, error) {
	reader, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer reader.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(reader, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read %s: %w", f.Name, err)
	}

	detected := mimetype.Detect(bytes.Clone(head[:n]))
	if detected.Is("application/octet-stream") && f.ContentType != "" {
		return baseType(f.ContentType), nil
	}
	return baseType(detected.String()), nil
}

func (s *service) isAllowed(contentType string) bool {
	for _, allowed := range s.allowed {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}

func (s *service) publicURL(key string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	u := url.URL{
		Scheme: scheme,
		Host:   s.cfg.MinIOPublicEndpoint,
		Path:   "/" + s.cfg.MinIOBucket + "/" + key,
	}
	return u.String()
}

func objectKey(complaintID uuid.UUID, name string) string {
	return fmt.Sprintf("complaints/%s/%s-%s", complaintID, uuid.New(), sanitizeName(name))
}

func sanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)

	cleaned = strings.Trim(cleaned, "._")
	if len(cleaned) > 100 {
		cleaned = cleaned[len(cleaned)-100:]
	}
	if cleaned == "" {
		return "file"
	}
	return cleaned
}

func baseType(contentType string) string {
	return strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
}
