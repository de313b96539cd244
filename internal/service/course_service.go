package service

import (
	"time"

	"studydeck-server/internal/domain"
	"studydeck-server/internal/repository"

	"github.com/google/uuid"
)

type CourseService struct {
	courseRepo repository.CourseRepository
	fileRepo   repository.FileRepository
}

func NewCourseService(courseRepo repository.CourseRepository, fileRepo repository.FileRepository) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		fileRepo:   fileRepo,
	}
}

// Create makes a manually managed course. Manual courses carry no external
// id; only the sync engine creates externally keyed records.
func (s *CourseService) Create(userID string, req *domain.CreateCourseRequest) (*domain.CourseResponse, error) {
	now := time.Now()
	course := &domain.Course{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      req.Name,
		Source:    domain.CourseSourceUpload,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.courseRepo.Create(course); err != nil {
		return nil, err
	}

	return courseResponse(course), nil
}

func (s *CourseService) List(userID string) ([]*domain.CourseResponse, error) {
	courses, err := s.courseRepo.List(userID)
	if err != nil {
		return nil, err
	}

	var responses []*domain.CourseResponse
	for _, c := range courses {
		responses = append(responses, courseResponse(c))
	}

	return responses, nil
}

func (s *CourseService) GetByID(userID, courseID string) (*domain.CourseResponse, error) {
	course, err := s.ownedCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	return courseResponse(course), nil
}

// Delete removes a course and every file under it.
func (s *CourseService) Delete(userID, courseID string) error {
	course, err := s.ownedCourse(userID, courseID)
	if err != nil {
		return err
	}

	files, err := s.fileRepo.ListByCourse(course.ID)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := s.fileRepo.Delete(f.ID); err != nil {
			return err
		}
	}

	return s.courseRepo.Delete(course.ID)
}

func (s *CourseService) ownedCourse(userID, courseID string) (*domain.Course, error) {
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

func courseResponse(c *domain.Course) *domain.CourseResponse {
	return &domain.CourseResponse{
		ID:         c.ID,
		Name:       c.Name,
		Source:     c.Source,
		ExternalID: c.ExternalID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
