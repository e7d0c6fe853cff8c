package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yigit/academia/internal/app/models"
	"github.com/yigit/academia/internal/app/models/dto"
	"github.com/yigit/academia/internal/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func boolPtr(b bool) *bool        { return &b }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestCreateCourseRejectsDuplicateTitle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.courseSvc.Create(ctx, dto.CourseRequest{Title: "Go Básico"})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if first.ID.IsZero() {
		t.Fatalf("expected generated identifier")
	}

	// An inactive course still owns its title
	if _, err := f.courseSvc.Deactivate(ctx, first.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	_, err = f.courseSvc.Create(ctx, dto.CourseRequest{Title: "Go Básico"})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err.Error() != msgCourseTitleExists {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestCreateCourseAppliesDefaultsAndRoundTrips(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.courseSvc.Create(ctx, dto.CourseRequest{
		Title:       "Redes",
		Description: "Modelo OSI",
		ImageURL:    "https://img.example.com/redes.png",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !created.Active || created.Students != 0 || created.Rating != 0 {
		t.Fatalf("defaults not applied: %+v", created)
	}

	found, err := f.courseSvc.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if *found != *created {
		t.Fatalf("round trip mismatch: %+v != %+v", found, created)
	}
}

func TestFindCourseByIDNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.courseSvc.FindByID(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateCourseOverwritesEveryField(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.courseSvc.Create(ctx, dto.CourseRequest{
		Title:    "Álgebra",
		Students: intPtr(30),
		Rating:   floatPtr(4),
		ImageURL: "https://img.example.com/a.png",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := f.courseSvc.Update(ctx, created.ID, dto.CourseRequest{Title: "Álgebra II"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	want := models.Course{ID: created.ID, Title: "Álgebra II", Active: true}
	if *updated != want {
		t.Fatalf("expected full overwrite %+v, got %+v", want, updated)
	}

	if _, err := f.courseSvc.Update(ctx, primitive.NewObjectID(), dto.CourseRequest{Title: "Nada"}); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeactivateCourseIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, _ := f.courseSvc.Create(ctx, dto.CourseRequest{Title: "Física"})
	for i := 0; i < 2; i++ {
		c, err := f.courseSvc.Deactivate(ctx, created.ID)
		if err != nil {
			t.Fatalf("deactivate #%d failed: %v", i+1, err)
		}
		if c.Active {
			t.Fatalf("deactivate #%d left course active", i+1)
		}
	}

	if _, err := f.courseSvc.Deactivate(ctx, primitive.NewObjectID()); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListActiveCoursesOnlyActive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a, _ := f.courseSvc.Create(ctx, dto.CourseRequest{Title: "Uno"})
	_, _ = f.courseSvc.Create(ctx, dto.CourseRequest{Title: "Dos", Active: boolPtr(false)})

	active, err := f.courseSvc.ListActive(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(active) != 1 || active[0].ID != a.ID {
		t.Fatalf("expected only %s, got %+v", a.ID.Hex(), active)
	}

	if _, err := f.courseSvc.Deactivate(ctx, a.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	active, err = f.courseSvc.ListActive(ctx)
	if err != nil {
		t.Fatalf("all-inactive listing must not fail: %v", err)
	}
	if active == nil || len(active) != 0 {
		t.Fatalf("expected empty, non-nil listing, got %#v", active)
	}
}

func TestFindUsersByCourse(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	course, _ := f.courseSvc.Create(ctx, dto.CourseRequest{Title: "Química"})

	if _, err := f.courseSvc.FindUsersByCourse(ctx, course.ID); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not found for a course without users, got %v", err)
	}

	_, err := f.userSvc.Create(ctx, dto.UserRequest{
		Email: "ana@correo.com", Name: "Ana", Password: "secreto",
		Courses: []string{course.ID.Hex()},
	})
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	_, _ = f.userSvc.Create(ctx, dto.UserRequest{Email: "luis@correo.com", Name: "Luis", Password: "secreto"})

	members, err := f.courseSvc.FindUsersByCourse(ctx, course.ID)
	if err != nil {
		t.Fatalf("find users failed: %v", err)
	}
	if len(members) != 1 || members[0].Email != "ana@correo.com" {
		t.Fatalf("unexpected members %+v", members)
	}
}

func TestBulkImportCoursesSkipsExistingTitles(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, _ = f.courseSvc.Create(ctx, dto.CourseRequest{Title: "Existente"})

	created, err := f.courseSvc.BulkImport(ctx, []dto.CourseRequest{
		{Title: "Nuevo A"},
		{Title: "Existente"},
		{Title: "Nuevo B"},
		{Title: "Nuevo A"},
	})
	if err != nil {
		t.Fatalf("bulk import failed: %v", err)
	}
	if len(created) != 2 || created[0].Title != "Nuevo A" || created[1].Title != "Nuevo B" {
		t.Fatalf("unexpected created courses %+v", created)
	}
	if len(f.courses.order) != 3 {
		t.Fatalf("expected 3 stored courses, got %d", len(f.courses.order))
	}
}

func TestCourseStoreFailureIsStoreError(t *testing.T) {
	f := newFixture()
	f.courses.fail = errStoreDown

	_, err := f.courseSvc.ListActive(context.Background())
	if !errors.Is(err, apperrors.ErrStore) || !errors.Is(err, errStoreDown) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
