package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/academia/internal/app/models"
	"github.com/yigit/academia/internal/app/models/dto"
	"github.com/yigit/academia/internal/app/repositories"
	"github.com/yigit/academia/internal/pkg/apperrors"
	"github.com/yigit/academia/internal/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseService defines the interface for course-related operations.
// Requests are expected to be validated already.
type CourseService interface {
	Create(ctx context.Context, req dto.CourseRequest) (*models.Course, error)
	Update(ctx context.Context, id primitive.ObjectID, req dto.CourseRequest) (*models.Course, error)
	Deactivate(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	ListActive(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	FindUsersByCourse(ctx context.Context, id primitive.ObjectID) ([]dto.CourseMember, error)
	BulkImport(ctx context.Context, reqs []dto.CourseRequest) ([]models.Course, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo repositories.ICourseRepository
	userRepo   repositories.IUserRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(
	courseRepo repositories.ICourseRepository,
	userRepo repositories.IUserRepository,
	logger zerolog.Logger,
) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Create stores a new course. Titles are unique across active and inactive courses.
func (s *courseServiceImpl) Create(ctx context.Context, req dto.CourseRequest) (*models.Course, error) {
	exists, err := s.titleExists(ctx, req.Title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError(msgCourseTitleExists)
	}

	course := dto.NormalizeCourse(req)
	if err := s.courseRepo.Insert(ctx, &course); err != nil {
		if errors.Is(err, repositories.ErrCourseTitleExists) {
			return nil, apperrors.NewConflictError(msgCourseTitleExists)
		}
		return nil, storeFailure(s.logger, models.KindCourse, "creating course", err)
	}
	return &course, nil
}

func (s *courseServiceImpl) titleExists(ctx context.Context, title string) (bool, error) {
	_, err := s.courseRepo.FindByTitle(ctx, title)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repositories.ErrCourseNotFound):
		return false, nil
	default:
		return false, storeFailure(s.logger, models.KindCourse, "checking course title", err)
	}
}

// Update sets every field of the course from the normalized request
func (s *courseServiceImpl) Update(ctx context.Context, id primitive.ObjectID, req dto.CourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.UpdateByID(ctx, id, dto.NormalizeCourse(req))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrCourseNotFound):
			return nil, apperrors.NewResourceNotFoundError(msgCourseNotFound)
		case errors.Is(err, repositories.ErrCourseTitleExists):
			return nil, apperrors.NewConflictError(msgCourseTitleExists)
		}
		return nil, storeFailure(s.logger, models.KindCourse, "updating course", err)
	}
	return course, nil
}

// Deactivate sets estado to false. Deactivating an inactive course succeeds.
func (s *courseServiceImpl) Deactivate(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	course, err := s.courseRepo.SetActive(ctx, id, false)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.NewResourceNotFoundError(msgCourseNotFound)
		}
		return nil, storeFailure(s.logger, models.KindCourse, "deactivating course", err)
	}
	return course, nil
}

// ListActive returns the active courses, an empty slice when there are none
func (s *courseServiceImpl) ListActive(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courseRepo.FindActive(ctx)
	if err != nil {
		return nil, storeFailure(s.logger, models.KindCourse, "listing courses", err)
	}
	return courses, nil
}

// FindByID returns a course, active or not
func (s *courseServiceImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Curso con ID %s no encontrado", id.Hex()))
		}
		return nil, storeFailure(s.logger, models.KindCourse, "retrieving course", err)
	}
	return course, nil
}

// FindUsersByCourse returns the users referencing the course. No match is reported as not found.
func (s *courseServiceImpl) FindUsersByCourse(ctx context.Context, id primitive.ObjectID) ([]dto.CourseMember, error) {
	users, err := s.userRepo.FindByCourse(ctx, id)
	if err != nil {
		return nil, storeFailure(s.logger, models.KindUser, "listing course users", err)
	}
	if len(users) == 0 {
		return nil, apperrors.NewResourceNotFoundError(
			fmt.Sprintf("No se encontraron usuarios para el curso con ID %s", id.Hex()))
	}

	members := make([]dto.CourseMember, 0, len(users))
	for _, u := range users {
		members = append(members, dto.NewCourseMember(u))
	}
	return members, nil
}

// BulkImport stores the courses whose title is not taken yet, one at a time
// and in order. Existing titles are skipped. Only new courses are returned.
func (s *courseServiceImpl) BulkImport(ctx context.Context, reqs []dto.CourseRequest) ([]models.Course, error) {
	created := make([]models.Course, 0, len(reqs))
	skipped := 0
	defer func() { metrics.ObserveBulkImport(string(models.KindCourse), len(created), skipped) }()

	for _, req := range reqs {
		exists, err := s.titleExists(ctx, req.Title)
		if err != nil {
			return nil, err
		}
		if exists {
			skipped++
			s.logger.Info().Str("titulo", req.Title).Msg("Course already exists, skipped")
			continue
		}

		course := dto.NormalizeCourse(req)
		if err := s.courseRepo.Insert(ctx, &course); err != nil {
			if errors.Is(err, repositories.ErrCourseTitleExists) {
				skipped++
				s.logger.Info().Str("titulo", req.Title).Msg("Course already exists, skipped")
				continue
			}
			return nil, storeFailure(s.logger, models.KindCourse, "importing courses", err)
		}
		created = append(created, course)
	}
	return created, nil
}
