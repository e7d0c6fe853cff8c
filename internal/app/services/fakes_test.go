package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/academia/internal/app/models"
	"github.com/yigit/academia/internal/app/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStoreDown = errors.New("store down")

// memCourseRepo is an in-memory ICourseRepository keeping insertion order
type memCourseRepo struct {
	order []primitive.ObjectID
	byID  map[primitive.ObjectID]models.Course
	fail  error
}

func newMemCourseRepo() *memCourseRepo {
	return &memCourseRepo{byID: map[primitive.ObjectID]models.Course{}}
}

func (m *memCourseRepo) Insert(_ context.Context, c *models.Course) error {
	if m.fail != nil {
		return m.fail
	}
	c.ID = primitive.NewObjectID()
	m.byID[c.ID] = *c
	m.order = append(m.order, c.ID)
	return nil
}

func (m *memCourseRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Course, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	c, ok := m.byID[id]
	if !ok {
		return nil, repositories.ErrCourseNotFound
	}
	return &c, nil
}

func (m *memCourseRepo) FindByTitle(_ context.Context, title string) (*models.Course, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	for _, id := range m.order {
		if c := m.byID[id]; c.Title == title {
			return &c, nil
		}
	}
	return nil, repositories.ErrCourseNotFound
}

func (m *memCourseRepo) FindActive(_ context.Context) ([]models.Course, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	out := []models.Course{}
	for _, id := range m.order {
		if c := m.byID[id]; c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCourseRepo) UpdateByID(_ context.Context, id primitive.ObjectID, c models.Course) (*models.Course, error) {
	if _, ok := m.byID[id]; !ok {
		return nil, repositories.ErrCourseNotFound
	}
	c.ID = id
	m.byID[id] = c
	return &c, nil
}

func (m *memCourseRepo) SetActive(_ context.Context, id primitive.ObjectID, active bool) (*models.Course, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, repositories.ErrCourseNotFound
	}
	c.Active = active
	m.byID[id] = c
	return &c, nil
}

func (m *memCourseRepo) ResolveReferences(_ context.Context, ids []primitive.ObjectID, _ ...string) ([]models.Course, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	out := []models.Course{}
	for _, id := range ids {
		if c, ok := m.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// memUserRepo is an in-memory IUserRepository keeping insertion order
type memUserRepo struct {
	order []primitive.ObjectID
	byID  map[primitive.ObjectID]models.User
	fail  error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[primitive.ObjectID]models.User{}}
}

func (m *memUserRepo) Insert(_ context.Context, u *models.User) error {
	if m.fail != nil {
		return m.fail
	}
	if u.Courses == nil {
		u.Courses = []primitive.ObjectID{}
	}
	u.ID = primitive.NewObjectID()
	m.byID[u.ID] = *u
	m.order = append(m.order, u.ID)
	return nil
}

func (m *memUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &u, nil
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	for _, id := range m.order {
		if u := m.byID[id]; u.Email == email {
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (m *memUserRepo) FindActive(_ context.Context) ([]models.User, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	out := []models.User{}
	for _, id := range m.order {
		if u := m.byID[id]; u.Active {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUserRepo) FindByCourse(_ context.Context, courseID primitive.ObjectID) ([]models.User, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	out := []models.User{}
	for _, id := range m.order {
		u := m.byID[id]
		if referencesCourse(u, courseID) {
			u.Courses = nil
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUserRepo) UpdateByID(_ context.Context, u *models.User) (*models.User, error) {
	current, ok := m.byID[u.ID]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	current.Name = u.Name
	current.Password = u.Password
	current.Active = u.Active
	current.ImageURL = u.ImageURL
	current.Courses = append([]primitive.ObjectID{}, u.Courses...)
	m.byID[u.ID] = current
	return &current, nil
}

func (m *memUserRepo) SetActiveByEmail(ctx context.Context, email string, active bool) (*models.User, error) {
	u, err := m.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	u.Active = active
	m.byID[u.ID] = *u
	return u, nil
}

type fixture struct {
	courses     *memCourseRepo
	users       *memUserRepo
	courseSvc   CourseService
	userSvc     UserService
	enrollments *EnrollmentManager
}

func newFixture() *fixture {
	courses := newMemCourseRepo()
	users := newMemUserRepo()
	enrollments := NewEnrollmentManager(courses)
	return &fixture{
		courses:     courses,
		users:       users,
		courseSvc:   NewCourseService(courses, users, zerolog.Nop()),
		userSvc:     NewUserService(users, enrollments, zerolog.Nop()),
		enrollments: enrollments,
	}
}

func referencesCourse(u models.User, id primitive.ObjectID) bool {
	for _, c := range u.Courses {
		if c == id {
			return true
		}
	}
	return false
}
