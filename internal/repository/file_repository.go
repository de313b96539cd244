package repository

import (
	"context"
	"fmt"

	"studydeck-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type FileRepository interface {
	Create(file *domain.File) error
	FindByID(id string) (*domain.File, error)
	FindByExternalID(courseID, externalID string) (*domain.File, error)
	ListByCourse(courseID string) ([]*domain.File, error)
	Delete(id string) error
}

type fileRepository struct {
	client *kivik.Client
	dbName string
}

func NewFileRepository(client *kivik.Client, dbName string) FileRepository {
	return &fileRepository{
		client: client,
		dbName: dbName,
	}
}

// fileDocID derives the document id. Synced files key on
// (course, external id); the store rejects a duplicate create with a 409.
func fileDocID(file *domain.File) string {
	if file.ExternalID != nil {
		return fmt.Sprintf("file:%s:ext:%s", file.CourseID, *file.ExternalID)
	}
	return fmt.Sprintf("file:%s", file.ID)
}

func (r *fileRepository) Create(file *domain.File) error {
	db := r.client.DB(r.dbName)

	_, err := db.Put(context.Background(), fileDocID(file), file)
	if err != nil {
		if IsConflict(err) {
			return err
		}
		return fmt.Errorf("failed to create file: %w", err)
	}

	return nil
}

func (r *fileRepository) FindByID(id string) (*domain.File, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"id":        id,
			"course_id": map[string]interface{}{"$exists": true},
		},
		"limit": 1,
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query file: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil
	}

	var file domain.File
	if err := rows.ScanDoc(&file); err != nil {
		return nil, fmt.Errorf("failed to scan file: %w", err)
	}

	return &file, nil
}

func (r *fileRepository) FindByExternalID(courseID, externalID string) (*domain.File, error) {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("file:%s:ext:%s", courseID, externalID)
	row := db.Get(context.Background(), docID)

	var file domain.File
	if err := row.ScanDoc(&file); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find file by external id: %w", err)
	}

	return &file, nil
}

func (r *fileRepository) ListByCourse(courseID string) ([]*domain.File, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"course_id": courseID,
		},
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	var files []*domain.File
	for rows.Next() {
		var file domain.File
		if err := rows.ScanDoc(&file); err != nil {
			continue
		}
		files = append(files, &file)
	}

	return files, nil
}

func (r *fileRepository) Delete(id string) error {
	db := r.client.DB(r.dbName)

	file, err := r.FindByID(id)
	if err != nil {
		return err
	}
	if file == nil {
		return fmt.Errorf("file not found")
	}

	docID := fileDocID(file)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		return fmt.Errorf("failed to fetch file for delete: %w", err)
	}

	rev, _ := existingDoc["_rev"].(string)
	if _, err := db.Delete(context.Background(), docID, rev); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
