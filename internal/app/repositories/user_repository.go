package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yigit/academia/internal/app/models"
	"github.com/yigit/academia/internal/pkg/dberrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// User error types
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
)

// IUserRepository defines the document store operations on users
type IUserRepository interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindActive(ctx context.Context) ([]models.User, error)
	FindByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.User, error)
	UpdateByID(ctx context.Context, user *models.User) (*models.User, error)
	SetActiveByEmail(ctx context.Context, email string, active bool) (*models.User, error)
}

// UserRepository handles database operations for users
type UserRepository struct {
	collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database, timeout time.Duration) *UserRepository {
	return &UserRepository{
		collection: collection{coll: db.Collection(models.UserCollection), timeout: timeout},
	}
}

// EnsureIndexes creates the cursos multikey index used by the course member
// lookup, the estado index and, when unique is set, a unique email index.
func (r *UserRepository) EnsureIndexes(ctx context.Context, unique bool) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "cursos", Value: 1}}},
		{Keys: bson.D{{Key: "estado", Value: 1}}},
	}
	if unique {
		indexes = append(indexes, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("error creating user indexes: %w", err)
	}
	return nil
}

// Insert stores a new user and sets its generated identifier
func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if user.Courses == nil {
		user.Courses = []primitive.ObjectID{}
	}

	user.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		user.ID = primitive.NilObjectID
		if dberrors.IsDuplicateKeyError(err) {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by identifier
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByEmail retrieves a user by email, active or not
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if dberrors.IsNoDocuments(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return &user, nil
}

// FindActive retrieves every user with estado true
func (r *UserRepository) FindActive(ctx context.Context) ([]models.User, error) {
	return r.find(ctx, bson.M{"estado": true}, nil)
}

// FindByCourse retrieves every user referencing the course. Course
// references are not loaded.
func (r *UserRepository) FindByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.User, error) {
	opts := options.Find().SetProjection(bson.M{"cursos": 0})
	return r.find(ctx, bson.M{"cursos": courseID}, opts)
}

func (r *UserRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if opts == nil {
		opts = options.Find()
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("error decoding users: %w", err)
	}
	return users, nil
}

// UpdateByID writes the mutable fields of user, addressed by its identifier
func (r *UserRepository) UpdateByID(ctx context.Context, user *models.User) (*models.User, error) {
	courses := user.Courses
	if courses == nil {
		courses = []primitive.ObjectID{}
	}

	return r.updateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"nombre":   user.Name,
		"password": user.Password,
		"estado":   user.Active,
		"imagen":   user.ImageURL,
		"cursos":   courses,
	})
}

// SetActiveByEmail sets the estado flag of the user with the given email
func (r *UserRepository) SetActiveByEmail(ctx context.Context, email string, active bool) (*models.User, error) {
	return r.updateOne(ctx, bson.M{"email": email}, bson.M{"estado": active})
}

func (r *UserRepository) updateOne(ctx context.Context, filter, fields bson.M) (*models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	if err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": fields}, opts).Decode(&user); err != nil {
		if dberrors.IsNoDocuments(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return &user, nil
}
