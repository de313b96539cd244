package repository

import (
	"context"
	"fmt"

	"studydeck-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type CourseRepository interface {
	Create(course *domain.Course) error
	FindByID(id string) (*domain.Course, error)
	FindByExternalID(userID, externalID string) (*domain.Course, error)
	List(userID string) ([]*domain.Course, error)
	Delete(id string) error
}

type courseRepository struct {
	client *kivik.Client
	dbName string
}

func NewCourseRepository(client *kivik.Client, dbName string) CourseRepository {
	return &courseRepository{
		client: client,
		dbName: dbName,
	}
}

// courseDocID derives the document id. Synced courses key on
// (user, external id) so a duplicate create is rejected by the store.
func courseDocID(course *domain.Course) string {
	if course.ExternalID != nil {
		return fmt.Sprintf("course:%s:ext:%s", course.UserID, *course.ExternalID)
	}
	return fmt.Sprintf("course:%s", course.ID)
}

func (r *courseRepository) Create(course *domain.Course) error {
	db := r.client.DB(r.dbName)

	_, err := db.Put(context.Background(), courseDocID(course), course)
	if err != nil {
		if IsConflict(err) {
			return err
		}
		return fmt.Errorf("failed to create course: %w", err)
	}

	return nil
}

func (r *courseRepository) FindByID(id string) (*domain.Course, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"id":        id,
			"name":      map[string]interface{}{"$exists": true},
			"course_id": map[string]interface{}{"$exists": false},
		},
		"limit": 1,
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query course: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil
	}

	var course domain.Course
	if err := rows.ScanDoc(&course); err != nil {
		return nil, fmt.Errorf("failed to scan course: %w", err)
	}

	return &course, nil
}

func (r *courseRepository) FindByExternalID(userID, externalID string) (*domain.Course, error) {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("course:%s:ext:%s", userID, externalID)
	row := db.Get(context.Background(), docID)

	var course domain.Course
	if err := row.ScanDoc(&course); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find course by external id: %w", err)
	}

	return &course, nil
}

func (r *courseRepository) List(userID string) ([]*domain.Course, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"user_id":   userID,
			"name":      map[string]interface{}{"$exists": true},
			"course_id": map[string]interface{}{"$exists": false},
		},
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	var courses []*domain.Course
	for rows.Next() {
		var course domain.Course
		if err := rows.ScanDoc(&course); err != nil {
			continue
		}
		courses = append(courses, &course)
	}

	return courses, nil
}

func (r *courseRepository) Delete(id string) error {
	db := r.client.DB(r.dbName)

	course, err := r.FindByID(id)
	if err != nil {
		return err
	}
	if course == nil {
		return fmt.Errorf("course not found")
	}

	docID := courseDocID(course)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		return fmt.Errorf("failed to fetch course for delete: %w", err)
	}

	rev, _ := existingDoc["_rev"].(string)
	if _, err := db.Delete(context.Background(), docID, rev); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	return nil
}
