package service

import (
	"time"

	"studydeck-server/internal/domain"
	"studydeck-server/internal/repository"

	"github.com/google/uuid"
)

type FileService struct {
	fileRepo   repository.FileRepository
	courseRepo repository.CourseRepository
}

func NewFileService(fileRepo repository.FileRepository, courseRepo repository.CourseRepository) *FileService {
	return &FileService{
		fileRepo:   fileRepo,
		courseRepo: courseRepo,
	}
}

// Create registers an uploaded file's metadata under a course. Uploaded
// files carry no external id and any content type is accepted; the sync
// allowlist only constrains what gets imported from the LMS.
func (s *FileService) Create(userID, courseID string, req *domain.CreateFileRequest) (*domain.FileResponse, error) {
	course, err := s.ownedCourse(userID, courseID)
	if err != nil {
		return nil, err
	}

	kind, _ := domain.KindForContentType(req.ContentType)

	now := time.Now()
	file := &domain.File{
		ID:          uuid.New().String(),
		UserID:      userID,
		CourseID:    course.ID,
		Name:        req.Name,
		Kind:        kind,
		ContentType: req.ContentType,
		Size:        req.Size,
		DownloadURL: req.DownloadURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.fileRepo.Create(file); err != nil {
		return nil, err
	}

	return fileResponse(file), nil
}

func (s *FileService) ListByCourse(userID, courseID string) ([]*domain.FileResponse, error) {
	course, err := s.ownedCourse(userID, courseID)
	if err != nil {
		return nil, err
	}

	files, err := s.fileRepo.ListByCourse(course.ID)
	if err != nil {
		return nil, err
	}

	var responses []*domain.FileResponse
	for _, f := range files {
		responses = append(responses, fileResponse(f))
	}

	return responses, nil
}

func (s *FileService) GetByID(userID, fileID string) (*domain.FileResponse, error) {
	file, err := s.ownedFile(userID, fileID)
	if err != nil {
		return nil, err
	}
	return fileResponse(file), nil
}

func (s *FileService) Delete(userID, fileID string) error {
	file, err := s.ownedFile(userID, fileID)
	if err != nil {
		return err
	}
	return s.fileRepo.Delete(file.ID)
}

func (s *FileService) ownedCourse(userID, courseID string) (*domain.Course, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrNotFound
	}
	if course.UserID != userID {
		return nil, ErrForbidden
	}
	return course, nil
}

func (s *FileService) ownedFile(userID, fileID string) (*domain.File, error) {
	file, err := s.fileRepo.FindByID(fileID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, ErrNotFound
	}
	if file.UserID != userID {
		return nil, ErrForbidden
	}
	return file, nil
}

func fileResponse(f *domain.File) *domain.FileResponse {
	return &domain.FileResponse{
		ID:          f.ID,
		CourseID:    f.CourseID,
		Name:        f.Name,
		Kind:        f.Kind,
		ContentType: f.ContentType,
		Size:        f.Size,
		DownloadURL: f.DownloadURL,
		ExternalID:  f.ExternalID,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
