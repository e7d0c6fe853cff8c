package services

import (
	"github.com/rs/zerolog"
	"github.com/yigit/academia/internal/app/models"
	"github.com/yigit/academia/internal/pkg/apperrors"
	"github.com/yigit/academia/internal/pkg/metrics"
)

// Services defined in this package:
// - CourseService: course creation, update, deactivation, listings and bulk import
// - UserService: user creation, merge update, deactivation, course references and bulk import
// - EnrollmentManager: the user to course reference policies and their read-time resolution

// Messages returned to API clients
const (
	msgCourseNotFound    = "Curso no encontrado"
	msgCourseTitleExists = "El curso con este título ya existe"
	msgUserNotFound      = "Usuario no encontrado"
	msgEmailExists       = "El correo electrónico ya está registrado"
)

// storeFailure logs an unexpected store error and wraps it into the taxonomy
func storeFailure(logger zerolog.Logger, kind models.EntityKind, op string, err error) error {
	metrics.ObserveStoreError(string(kind))
	logger.Error().Err(err).Str("entity", string(kind)).Str("op", op).Msg("Document store failure")
	return apperrors.NewStoreError("error "+op, err)
}
