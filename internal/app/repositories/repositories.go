package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository *CourseRepository
	UserRepository   *UserRepository
}

// NewRepositories initializes all repositories. Every store call is bounded by timeout.
func NewRepositories(db *mongo.Database, timeout time.Duration) *Repositories {
	return &Repositories{
		CourseRepository: NewCourseRepository(db, timeout),
		UserRepository:   NewUserRepository(db, timeout),
	}
}

// EnsureIndexes creates the lookup indexes of both collections. With unique
// set, titles and emails also get unique indexes.
func (r *Repositories) EnsureIndexes(ctx context.Context, unique bool) error {
	if err := r.CourseRepository.EnsureIndexes(ctx, unique); err != nil {
		return err
	}
	return r.UserRepository.EnsureIndexes(ctx, unique)
}

// collection couples a mongo collection with the per-operation timeout
type collection struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func (c collection) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}
