package seed

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/academia/internal/app/models/dto"
	"github.com/yigit/academia/internal/app/services"
)

// defaultCourses is the catalogue loaded into an empty development database
var defaultCourses = []dto.CourseRequest{
	{Title: "Introducción a Go", Description: "Tipos, funciones y paquetes"},
	{Title: "Bases de datos documentales", Description: "Modelado de colecciones y consultas"},
	{Title: "Diseño de APIs REST", Description: "Recursos, verbos y códigos de estado"},
}

// CreateDefaultData loads the default courses. Titles already stored are
// skipped, so running it on every start is safe.
func CreateDefaultData(ctx context.Context, courseService services.CourseService, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default courses...")

	created, err := courseService.BulkImport(ctx, defaultCourses)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default courses")
		return err
	}

	lgr.Info().Int("created", len(created)).Int("total", len(defaultCourses)).Msg("Default courses ready")
	return nil
}
