package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/academia/internal/app/models"
	"github.com/yigit/academia/internal/app/models/dto"
	"github.com/yigit/academia/internal/app/repositories"
	"github.com/yigit/academia/internal/pkg/apperrors"
	"github.com/yigit/academia/internal/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService defines the interface for user-related operations. Users are
// addressed by email except for the course listing, which takes the identifier.
type UserService interface {
	Create(ctx context.Context, req dto.UserRequest) (*models.User, error)
	Update(ctx context.Context, email string, req dto.UserRequest) (*models.User, error)
	Deactivate(ctx context.Context, email string) (*models.User, error)
	ListActive(ctx context.Context) ([]dto.UserSummary, error)
	AddCourses(ctx context.Context, email string, courseIDs []primitive.ObjectID) (*models.User, error)
	ReplaceCourses(ctx context.Context, email string, courseIDs []primitive.ObjectID) (*models.User, error)
	ListCoursesOf(ctx context.Context, userID primitive.ObjectID) ([]models.Course, error)
	BulkImport(ctx context.Context, reqs []dto.UserRequest) ([]models.User, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userRepo    repositories.IUserRepository
	enrollments *EnrollmentManager
	logger      zerolog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(
	userRepo repositories.IUserRepository,
	enrollments *EnrollmentManager,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:    userRepo,
		enrollments: enrollments,
		logger:      logger,
	}
}

// Create stores a new user with defaults applied. Emails are unique.
func (s *userServiceImpl) Create(ctx context.Context, req dto.UserRequest) (*models.User, error) {
	exists, err := s.emailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError(msgEmailExists)
	}

	user, err := dto.NormalizeUser(req)
	if err != nil {
		return nil, apperrors.NewValidationError("cursos", err.Error())
	}

	if err := s.userRepo.Insert(ctx, &user); err != nil {
		if errors.Is(err, repositories.ErrEmailAlreadyExists) {
			return nil, apperrors.NewConflictError(msgEmailExists)
		}
		return nil, storeFailure(s.logger, models.KindUser, "creating user", err)
	}
	return &user, nil
}

func (s *userServiceImpl) emailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repositories.ErrUserNotFound):
		return false, nil
	default:
		return false, storeFailure(s.logger, models.KindUser, "checking email", err)
	}
}

// Update merges the request into the user found by email
func (s *userServiceImpl) Update(ctx context.Context, email string, req dto.UserRequest) (*models.User, error) {
	patch, err := req.Patch()
	if err != nil {
		return nil, apperrors.NewValidationError("cursos", err.Error())
	}

	return s.mutate(ctx, email, "updating user", func(u models.User) models.User {
		return s.enrollments.Merge(u, patch)
	})
}

// AddCourses appends the course ids the user does not reference yet
func (s *userServiceImpl) AddCourses(ctx context.Context, email string, courseIDs []primitive.ObjectID) (*models.User, error) {
	return s.mutate(ctx, email, "adding courses", func(u models.User) models.User {
		return s.enrollments.AddOnly(u, courseIDs)
	})
}

// ReplaceCourses overwrites the course references of the user
func (s *userServiceImpl) ReplaceCourses(ctx context.Context, email string, courseIDs []primitive.ObjectID) (*models.User, error) {
	return s.mutate(ctx, email, "replacing courses", func(u models.User) models.User {
		return s.enrollments.Replace(u, courseIDs)
	})
}

// mutate loads the user by email, applies policy and persists the result
func (s *userServiceImpl) mutate(ctx context.Context, email, op string, policy func(models.User) models.User) (*models.User, error) {
	current, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError(msgUserNotFound)
		}
		return nil, storeFailure(s.logger, models.KindUser, op, err)
	}

	next := policy(*current)
	updated, err := s.userRepo.UpdateByID(ctx, &next)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError(msgUserNotFound)
		}
		return nil, storeFailure(s.logger, models.KindUser, op, err)
	}
	return updated, nil
}

// Deactivate sets estado to false. Deactivating an inactive user succeeds.
func (s *userServiceImpl) Deactivate(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.SetActiveByEmail(ctx, email, false)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError(msgUserNotFound)
		}
		return nil, storeFailure(s.logger, models.KindUser, "deactivating user", err)
	}
	return user, nil
}

// ListActive returns the active users with course titles in place of references
func (s *userServiceImpl) ListActive(ctx context.Context) ([]dto.UserSummary, error) {
	users, err := s.userRepo.FindActive(ctx)
	if err != nil {
		return nil, storeFailure(s.logger, models.KindUser, "listing users", err)
	}

	summaries, err := s.enrollments.Summaries(ctx, users)
	if err != nil {
		return nil, storeFailure(s.logger, models.KindCourse, "resolving course titles", err)
	}
	return summaries, nil
}

// ListCoursesOf returns the full courses referenced by the user. An empty
// reference list yields an empty slice.
func (s *userServiceImpl) ListCoursesOf(ctx context.Context, userID primitive.ObjectID) ([]models.Course, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError(msgUserNotFound)
		}
		return nil, storeFailure(s.logger, models.KindUser, "retrieving user", err)
	}

	courses, err := s.enrollments.Courses(ctx, *user)
	if err != nil {
		return nil, storeFailure(s.logger, models.KindCourse, "resolving user courses", err)
	}
	return courses, nil
}

// BulkImport deduplicates the batch by email, first occurrence wins, then
// stores each remaining user whose email is not registered yet. Only new
// users are returned.
func (s *userServiceImpl) BulkImport(ctx context.Context, reqs []dto.UserRequest) ([]models.User, error) {
	batch := uniqueByEmail(reqs)

	created := make([]models.User, 0, len(batch))
	skipped := len(reqs) - len(batch)
	defer func() { metrics.ObserveBulkImport(string(models.KindUser), len(created), skipped) }()

	for _, req := range batch {
		exists, err := s.emailExists(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			skipped++
			s.logger.Info().Str("email", req.Email).Msg("Email already registered, skipped")
			continue
		}

		user, err := dto.NormalizeUser(req)
		if err != nil {
			return nil, apperrors.NewValidationError("cursos", err.Error())
		}

		if err := s.userRepo.Insert(ctx, &user); err != nil {
			if errors.Is(err, repositories.ErrEmailAlreadyExists) {
				skipped++
				s.logger.Info().Str("email", req.Email).Msg("Email already registered, skipped")
				continue
			}
			return nil, storeFailure(s.logger, models.KindUser, "importing users", err)
		}
		created = append(created, user)
	}
	return created, nil
}

// uniqueByEmail keeps the first request of each email, preserving order
func uniqueByEmail(reqs []dto.UserRequest) []dto.UserRequest {
	seen := make(map[string]struct{}, len(reqs))
	out := make([]dto.UserRequest, 0, len(reqs))
	for _, r := range reqs {
		if _, dup := seen[r.Email]; dup {
			continue
		}
		seen[r.Email] = struct{}{}
		out = append(out, r)
	}
	return out
}
