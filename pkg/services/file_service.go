package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/plcforge/plcforge/ent"
	"github.com/plcforge/plcforge/ent/uploadedfile"
	"github.com/plcforge/plcforge/internal/domain"
)

// FileService is the ent-backed implementation of FileRepo (spec.md §6:
// "SafetyManualRepo, FileRepo: identical pattern" to CodeRepo), tracking
// documents uploaded ahead of text extraction and retrieval ingestion.
type FileService struct {
	client *ent.Client
}

// NewFileService wraps an ent client.
func NewFileService(client *ent.Client) *FileService {
	return &FileService{client: client}
}

// Create inserts an UploadedFile row.
func (s *FileService) Create(ctx context.Context, file domain.UploadedFile) (domain.UploadedFile, error) {
	if file.ID == "" {
		file.ID = uuid.New().String()
	}
	row, err := s.client.UploadedFile.Create().
		SetID(file.ID).
		SetProjectID(file.ProjectID).
		SetFileName(file.FileName).
		SetFileKind(file.FileKind).
		SetStoragePath(file.StoragePath).
		Save(ctx)
	if err != nil {
		return domain.UploadedFile{}, fmt.Errorf("services: create uploaded file: %w", err)
	}
	return fileFromEnt(row), nil
}

// GetByID returns the file by id, or a domain.NotFoundError.
func (s *FileService) GetByID(ctx context.Context, id string) (domain.UploadedFile, error) {
	row, err := s.client.UploadedFile.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return domain.UploadedFile{}, domain.NewNotFound("UploadedFile", id)
		}
		return domain.UploadedFile{}, fmt.Errorf("services: get uploaded file %s: %w", id, err)
	}
	return fileFromEnt(row), nil
}

// ListByProject returns every file uploaded to a project.
func (s *FileService) ListByProject(ctx context.Context, projectID string) ([]domain.UploadedFile, error) {
	rows, err := s.client.UploadedFile.Query().
		Where(uploadedfile.ProjectIDEQ(projectID)).
		Order(ent.Asc(uploadedfile.FieldCreatedAt)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("services: list files for project %s: %w", projectID, err)
	}
	out := make([]domain.UploadedFile, len(rows))
	for i, row := range rows {
		out[i] = fileFromEnt(row)
	}
	return out, nil
}

// DeleteByID removes a file's metadata row; the underlying storage object
// is the caller's responsibility.
func (s *FileService) DeleteByID(ctx context.Context, id string) error {
	if err := s.client.UploadedFile.DeleteOneID(id).Exec(ctx); err != nil {
		if ent.IsNotFound(err) {
			return domain.NewNotFound("UploadedFile", id)
		}
		return fmt.Errorf("services: delete uploaded file %s: %w", id, err)
	}
	return nil
}

func fileFromEnt(row *ent.UploadedFile) domain.UploadedFile {
	return domain.UploadedFile{
		ID:          row.ID,
		ProjectID:   row.ProjectID,
		FileName:    row.FileName,
		FileKind:    row.FileKind,
		StoragePath: row.StoragePath,
		CreatedAt:   row.CreatedAt,
	}
}
