package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"studydeck-server/internal/domain"
	"studydeck-server/internal/repository"
	"studydeck-server/internal/websocket"

	"github.com/google/uuid"
)

// workflowStateAvailable is the only remote lifecycle state eligible for
// import; completed and deleted courses are never synced.
const workflowStateAvailable = "available"

// RemoteCatalogClient is the sync engine's view of the LMS API.
type RemoteCatalogClient interface {
	ListCourses(ctx context.Context, token string) ([]domain.RemoteCourse, error)
	ListCourseFiles(ctx context.Context, token, courseID string) ([]domain.RemoteFile, error)
	VerifyToken(ctx context.Context, token string) (bool, error)
}

// SyncService reconciles a user's remote LMS catalog against the local
// store. Reconciliation is append-only and keyed on external ids: records
// created by an earlier run are never touched, and re-running against an
// unchanged catalog is a no-op.
type SyncService struct {
	lms          RemoteCatalogClient
	courseRepo   repository.CourseRepository
	fileRepo     repository.FileRepository
	userRepo     repository.UserRepository
	wsManager    *websocket.Manager
	windowMonths int
}

func NewSyncService(
	lms RemoteCatalogClient,
	courseRepo repository.CourseRepository,
	fileRepo repository.FileRepository,
	userRepo repository.UserRepository,
	wsManager *websocket.Manager,
	windowMonths int,
) *SyncService {
	return &SyncService{
		lms:          lms,
		courseRepo:   courseRepo,
		fileRepo:     fileRepo,
		userRepo:     userRepo,
		wsManager:    wsManager,
		windowMonths: windowMonths,
	}
}

// SyncCourses walks the remote catalog and creates the local Course and File
// records that do not exist yet. Courses outside the eligibility window
// (not "available", or older than the configured number of months) are
// skipped entirely. Remote errors abort the run; records committed before
// the failure stay committed, and a re-run after the failure is safe.
//
// An empty token means "use the stored credential from ConnectAccount".
func (s *SyncService) SyncCourses(ctx context.Context, userID, token string) (*domain.SyncResult, error) {
	if token == "" {
		user, err := s.userRepo.FindByID(userID)
		if err != nil {
			return nil, err
		}
		if user == nil || user.LMSToken == "" {
			return nil, ErrNoLMSToken
		}
		token = user.LMSToken
	}

	remote, err := s.lms.ListCourses(ctx, token)
	if err != nil {
		return nil, err
	}

	s.broadcast(userID, websocket.TypeSyncStarted, &websocket.SyncStartedPayload{
		RemoteCourses: len(remote),
	})

	result := &domain.SyncResult{}
	cutoff := time.Now().AddDate(0, -s.windowMonths, 0)

	for _, rc := range remote {
		if rc.WorkflowState != workflowStateAvailable || rc.CreatedAt.Before(cutoff) {
			continue
		}

		course, created, err := s.resolveCourse(userID, &rc)
		if err != nil {
			return nil, err
		}
		if created {
			result.CoursesAdded++
		}

		added, err := s.syncCourseFiles(ctx, token, userID, course, strconv.FormatInt(rc.ID, 10))
		if err != nil {
			return nil, err
		}
		result.FilesAdded += added

		s.broadcast(userID, websocket.TypeCourseSynced, &websocket.CourseSyncedPayload{
			CourseID:   course.ID,
			Name:       course.Name,
			FilesAdded: added,
		})
	}

	s.broadcast(userID, websocket.TypeSyncCompleted, &websocket.SyncCompletedPayload{
		CoursesAdded: result.CoursesAdded,
		FilesAdded:   result.FilesAdded,
	})

	return result, nil
}

// resolveCourse returns the local course for a remote one, creating it if
// absent. A store conflict means a concurrent run created it first; the
// winner's record is reused and nothing is counted.
func (s *SyncService) resolveCourse(userID string, rc *domain.RemoteCourse) (*domain.Course, bool, error) {
	externalID := strconv.FormatInt(rc.ID, 10)

	course, err := s.courseRepo.FindByExternalID(userID, externalID)
	if err != nil {
		return nil, false, err
	}
	if course != nil {
		return course, false, nil
	}

	now := time.Now()
	course = &domain.Course{
		ID:         uuid.New().String(),
		UserID:     userID,
		Name:       rc.Name,
		Source:     domain.CourseSourceLMS,
		ExternalID: &externalID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.courseRepo.Create(course); err != nil {
		if !repository.IsConflict(err) {
			return nil, false, err
		}
		course, err = s.courseRepo.FindByExternalID(userID, externalID)
		if err != nil {
			return nil, false, err
		}
		if course == nil {
			return nil, false, fmt.Errorf("course %s missing after write conflict", externalID)
		}
		return course, false, nil
	}

	return course, true, nil
}

func (s *SyncService) syncCourseFiles(ctx context.Context, token, userID string, course *domain.Course, remoteCourseID string) (int, error) {
	remoteFiles, err := s.lms.ListCourseFiles(ctx, token, remoteCourseID)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, rf := range remoteFiles {
		externalID := strconv.FormatInt(rf.ID, 10)

		existing, err := s.fileRepo.FindByExternalID(course.ID, externalID)
		if err != nil {
			return added, err
		}
		if existing != nil {
			continue
		}

		kind, importable := domain.KindForContentType(rf.ContentType)
		if !importable {
			continue
		}

		now := time.Now()
		file := &domain.File{
			ID:          uuid.New().String(),
			UserID:      userID,
			CourseID:    course.ID,
			Name:        rf.DisplayName,
			Kind:        kind,
			ContentType: rf.ContentType,
			Size:        rf.Size,
			DownloadURL: rf.URL,
			ExternalID:  &externalID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := s.fileRepo.Create(file); err != nil {
			if repository.IsConflict(err) {
				continue
			}
			return added, err
		}
		added++
	}

	return added, nil
}

// ConnectAccount verifies the token against the LMS and stores it on the
// user record iff accepted. A rejected token never overwrites a previously
// stored one.
func (s *SyncService) ConnectAccount(ctx context.Context, userID, token string) (bool, error) {
	ok, err := s.lms.VerifyToken(ctx, token)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := s.userRepo.UpdateLMSToken(userID, token); err != nil {
		return false, err
	}

	return true, nil
}

func (s *SyncService) broadcast(userID string, msgType websocket.MessageType, payload interface{}) {
	if s.wsManager == nil {
		return
	}

	msg, err := websocket.NewMessage(msgType, payload)
	if err != nil {
		return
	}
	s.wsManager.BroadcastToUser(userID, msg)
}
