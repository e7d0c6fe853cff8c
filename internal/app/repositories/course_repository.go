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

// Course error types
var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrCourseTitleExists = errors.New("course with this title already exists")
)

// ICourseRepository defines the document store operations on courses
type ICourseRepository interface {
	Insert(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	FindByTitle(ctx context.Context, title string) (*models.Course, error)
	FindActive(ctx context.Context) ([]models.Course, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, course models.Course) (*models.Course, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.Course, error)
	ResolveReferences(ctx context.Context, ids []primitive.ObjectID, fields ...string) ([]models.Course, error)
}

// CourseRepository handles database operations for courses
type CourseRepository struct {
	collection
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *mongo.Database, timeout time.Duration) *CourseRepository {
	return &CourseRepository{
		collection: collection{coll: db.Collection(models.CourseCollection), timeout: timeout},
	}
}

// EnsureIndexes creates the estado index and, when unique is set, a unique titulo index
func (r *CourseRepository) EnsureIndexes(ctx context.Context, unique bool) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "estado", Value: 1}}},
	}
	if unique {
		indexes = append(indexes, mongo.IndexModel{
			Keys:    bson.D{{Key: "titulo", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("error creating course indexes: %w", err)
	}
	return nil
}

// Insert stores a new course and sets its generated identifier
func (r *CourseRepository) Insert(ctx context.Context, course *models.Course) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	course.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, course); err != nil {
		course.ID = primitive.NilObjectID
		if dberrors.IsDuplicateKeyError(err) {
			return ErrCourseTitleExists
		}
		return fmt.Errorf("error inserting course: %w", err)
	}
	return nil
}

// FindByID retrieves a course by identifier, active or not
func (r *CourseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByTitle retrieves a course by exact title, active or not
func (r *CourseRepository) FindByTitle(ctx context.Context, title string) (*models.Course, error) {
	return r.findOne(ctx, bson.M{"titulo": title})
}

func (r *CourseRepository) findOne(ctx context.Context, filter bson.M) (*models.Course, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var course models.Course
	if err := r.coll.FindOne(ctx, filter).Decode(&course); err != nil {
		if dberrors.IsNoDocuments(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return &course, nil
}

// FindActive retrieves every course with estado true
func (r *CourseRepository) FindActive(ctx context.Context) ([]models.Course, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"estado": true})
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer cursor.Close(ctx)

	courses := []models.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("error decoding courses: %w", err)
	}
	return courses, nil
}

// UpdateByID sets every course field from course and returns the stored result
func (r *CourseRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, course models.Course) (*models.Course, error) {
	return r.updateByID(ctx, id, bson.M{
		"titulo":       course.Title,
		"descripcion":  course.Description,
		"estado":       course.Active,
		"imagen":       course.ImageURL,
		"alumnos":      course.Students,
		"calificacion": course.Rating,
	})
}

// SetActive sets the estado flag of a course
func (r *CourseRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.Course, error) {
	return r.updateByID(ctx, id, bson.M{"estado": active})
}

func (r *CourseRepository) updateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Course, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var course models.Course
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&course)
	if err != nil {
		if dberrors.IsNoDocuments(err) {
			return nil, ErrCourseNotFound
		}
		if dberrors.IsDuplicateKeyError(err) {
			return nil, ErrCourseTitleExists
		}
		return nil, fmt.Errorf("error updating course: %w", err)
	}
	return &course, nil
}

// ResolveReferences expands course identifiers into course records with a
// single query. The result follows the order of ids; identifiers that no
// longer resolve are omitted. When fields are given only those are loaded.
func (r *CourseRepository) ResolveReferences(ctx context.Context, ids []primitive.ObjectID, fields ...string) ([]models.Course, error) {
	if len(ids) == 0 {
		return []models.Course{}, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find()
	if len(fields) > 0 {
		projection := bson.D{}
		for _, f := range fields {
			projection = append(projection, bson.E{Key: f, Value: 1})
		}
		opts.SetProjection(projection)
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("error resolving course references: %w", err)
	}
	defer cursor.Close(ctx)

	var found []models.Course
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("error decoding course references: %w", err)
	}

	byID := make(map[primitive.ObjectID]models.Course, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	resolved := make([]models.Course, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			resolved = append(resolved, c)
		}
	}
	return resolved, nil
}
