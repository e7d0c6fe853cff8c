package services

import (
	"context"

	"github.com/yigit/academia/internal/app/models"
	"github.com/yigit/academia/internal/app/models/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseResolver expands stored course references into course records
type CourseResolver interface {
	ResolveReferences(ctx context.Context, ids []primitive.ObjectID, fields ...string) ([]models.Course, error)
}

// EnrollmentManager maintains the course reference list of users. The three
// write policies are distinct on purpose and must not be interchanged:
//
//   - Merge: partial user update, scalars only when supplied, references added
//   - AddOnly: references added, nothing else touched
//   - Replace: references overwritten
//
// Course deactivation never touches user references. Resolution omits
// references that no longer point to a stored course.
type EnrollmentManager struct {
	courses CourseResolver
}

// NewEnrollmentManager creates a new EnrollmentManager
func NewEnrollmentManager(courses CourseResolver) *EnrollmentManager {
	return &EnrollmentManager{courses: courses}
}

// Merge applies a partial update. Name, password and image are overwritten
// only by non-empty values, the active flag whenever it is present.
func (m *EnrollmentManager) Merge(user models.User, patch dto.UserPatch) models.User {
	if patch.Name != "" {
		user.Name = patch.Name
	}
	if patch.Password != "" {
		user.Password = patch.Password
	}
	if patch.ImageURL != "" {
		user.ImageURL = patch.ImageURL
	}
	if patch.Active != nil {
		user.Active = *patch.Active
	}
	user.Courses = appendMissing(user.Courses, patch.Courses)
	return user
}

// AddOnly appends the ids the user does not reference yet, keeping the
// existing order first.
func (m *EnrollmentManager) AddOnly(user models.User, ids []primitive.ObjectID) models.User {
	user.Courses = appendMissing(user.Courses, ids)
	return user
}

// Replace overwrites the reference list with ids, duplicates removed
func (m *EnrollmentManager) Replace(user models.User, ids []primitive.ObjectID) models.User {
	user.Courses = appendMissing(nil, ids)
	return user
}

// Courses resolves the full course records referenced by user
func (m *EnrollmentManager) Courses(ctx context.Context, user models.User) ([]models.Course, error) {
	return m.courses.ResolveReferences(ctx, user.Courses)
}

// Summaries projects users for listing, each reference list replaced by the
// titles of the referenced courses. All references are resolved in one call.
func (m *EnrollmentManager) Summaries(ctx context.Context, users []models.User) ([]dto.UserSummary, error) {
	var refs []primitive.ObjectID
	for _, u := range users {
		refs = append(refs, u.Courses...)
	}
	refs = appendMissing(nil, refs)

	courses, err := m.courses.ResolveReferences(ctx, refs, "titulo")
	if err != nil {
		return nil, err
	}

	titles := make(map[primitive.ObjectID]string, len(courses))
	for _, c := range courses {
		titles[c.ID] = c.Title
	}

	summaries := make([]dto.UserSummary, 0, len(users))
	for _, u := range users {
		names := make([]string, 0, len(u.Courses))
		for _, id := range u.Courses {
			if title, ok := titles[id]; ok {
				names = append(names, title)
			}
		}
		summaries = append(summaries, dto.UserSummary{
			ID:       u.ID,
			Email:    u.Email,
			Name:     u.Name,
			Password: u.Password,
			Active:   u.Active,
			ImageURL: u.ImageURL,
			Courses:  names,
		})
	}
	return summaries, nil
}

// appendMissing returns existing followed by the ids of incoming not yet
// present, each id once. The result is never nil.
func appendMissing(existing, incoming []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(existing)+len(incoming))
	seen := make(map[primitive.ObjectID]struct{}, len(existing)+len(incoming))
	for _, list := range [][]primitive.ObjectID{existing, incoming} {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
