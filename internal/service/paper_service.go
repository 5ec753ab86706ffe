package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"re-ad-be/internal/dto"
	"re-ad-be/internal/entity"
	"re-ad-be/internal/repository/memory"
	"re-ad-be/pkg/events"

	"github.com/google/uuid"
)

const pdfMimeType = "application/pdf"

type IPaperService interface {
	Upload(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (*dto.PaperResponse, error)
	Show(ctx context.Context, userId uuid.UUID) (*dto.PaperResponse, error)
}

type paperService struct {
	registry *memory.WorkspaceRegistry
	notifier *Notifier
}

func NewPaperService(registry *memory.WorkspaceRegistry, n *Notifier) IPaperService {
	return &paperService{
		registry: registry,
		notifier: n,
	}
}

// Upload accepts the file only when its declared MIME type is exactly
// application/pdf. The content itself is not inspected.
func (s *paperService) Upload(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (*dto.PaperResponse, error) {
	if file == nil {
		return nil, s.notifier.failed("upload_paper", ErrMissingFile)
	}
	if file.Header.Get("Content-Type") != pdfMimeType {
		return nil, s.notifier.failed("upload_paper", ErrInvalidFileType)
	}

	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	paper := &entity.Paper{
		Name:       file.Filename,
		DataURI:    "data:" + pdfMimeType + ";base64," + base64.StdEncoding.EncodeToString(raw),
		Size:       int64(len(raw)),
		UploadedAt: time.Now(),
	}

	session := s.registry.Get(userId)
	session.SetPaper(paper)

	s.notifier.emit(ctx, session, "upload_paper", events.PaperUploaded, map[string]interface{}{
		"name": paper.Name,
		"size": paper.Size,
	})

	return &dto.PaperResponse{
		Name:       paper.Name,
		Size:       paper.Size,
		UploadedAt: paper.UploadedAt,
	}, nil
}

func (s *paperService) Show(ctx context.Context, userId uuid.UUID) (*dto.PaperResponse, error) {
	paper, ok := s.registry.Get(userId).Paper()
	if !ok {
		return nil, ErrPaperNotFound
	}
	return &dto.PaperResponse{
		Name:       paper.Name,
		Size:       paper.Size,
		DataUri:    paper.DataURI,
		UploadedAt: paper.UploadedAt,
	}, nil
}
