package controllers_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/academia/internal/app/models"
	"github.com/yigit/academia/internal/app/models/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockCourseService struct {
	mock.Mock
}

func (m *mockCourseService) Create(ctx context.Context, req dto.CourseRequest) (*models.Course, error) {
	args := m.Called(ctx, req)
	return coursePtr(args.Get(0)), args.Error(1)
}

func (m *mockCourseService) Update(ctx context.Context, id primitive.ObjectID, req dto.CourseRequest) (*models.Course, error) {
	args := m.Called(ctx, id, req)
	return coursePtr(args.Get(0)), args.Error(1)
}

func (m *mockCourseService) Deactivate(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	args := m.Called(ctx, id)
	return coursePtr(args.Get(0)), args.Error(1)
}

func (m *mockCourseService) ListActive(ctx context.Context) ([]models.Course, error) {
	args := m.Called(ctx)
	courses, _ := args.Get(0).([]models.Course)
	return courses, args.Error(1)
}

func (m *mockCourseService) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	args := m.Called(ctx, id)
	return coursePtr(args.Get(0)), args.Error(1)
}

func (m *mockCourseService) FindUsersByCourse(ctx context.Context, id primitive.ObjectID) ([]dto.CourseMember, error) {
	args := m.Called(ctx, id)
	members, _ := args.Get(0).([]dto.CourseMember)
	return members, args.Error(1)
}

func (m *mockCourseService) BulkImport(ctx context.Context, reqs []dto.CourseRequest) ([]models.Course, error) {
	args := m.Called(ctx, reqs)
	courses, _ := args.Get(0).([]models.Course)
	return courses, args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Create(ctx context.Context, req dto.UserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	return userPtr(args.Get(0)), args.Error(1)
}

func (m *mockUserService) Update(ctx context.Context, email string, req dto.UserRequest) (*models.User, error) {
	args := m.Called(ctx, email, req)
	return userPtr(args.Get(0)), args.Error(1)
}

func (m *mockUserService) Deactivate(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	return userPtr(args.Get(0)), args.Error(1)
}

func (m *mockUserService) ListActive(ctx context.Context) ([]dto.UserSummary, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]dto.UserSummary)
	return users, args.Error(1)
}

func (m *mockUserService) AddCourses(ctx context.Context, email string, courseIDs []primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, email, courseIDs)
	return userPtr(args.Get(0)), args.Error(1)
}

func (m *mockUserService) ReplaceCourses(ctx context.Context, email string, courseIDs []primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, email, courseIDs)
	return userPtr(args.Get(0)), args.Error(1)
}

func (m *mockUserService) ListCoursesOf(ctx context.Context, userID primitive.ObjectID) ([]models.Course, error) {
	args := m.Called(ctx, userID)
	courses, _ := args.Get(0).([]models.Course)
	return courses, args.Error(1)
}

func (m *mockUserService) BulkImport(ctx context.Context, reqs []dto.UserRequest) ([]models.User, error) {
	args := m.Called(ctx, reqs)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

func coursePtr(v interface{}) *models.Course {
	c, _ := v.(*models.Course)
	return c
}

func userPtr(v interface{}) *models.User {
	u, _ := v.(*models.User)
	return u
}
