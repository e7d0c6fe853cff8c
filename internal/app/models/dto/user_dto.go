package dto

import (
	"fmt"

	"github.com/yigit/academia/internal/app/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRequest represents the body of user create, update and bulk import
type UserRequest struct {
	Email    string   `json:"email" validate:"required,email,email_tld" example:"ana@correo.com"`
	Name     string   `json:"nombre" validate:"required,min=3,max=30,person_name" example:"Ana Pérez"`
	Password string   `json:"password" validate:"required,min=6,max=30,password_chars" example:"secreto1"`
	Active   *bool    `json:"estado" example:"true"`
	ImageURL string   `json:"imagen" validate:"uri_or_empty,user_image"`
	Courses  []string `json:"cursos" validate:"omitempty,dive,object_id"`
}

// ValidationMessages returns the field messages shown to API clients
func (UserRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"email.type":      "El correo electrónico debe ser un texto",
		"email.required":  "El correo electrónico es un campo requerido",
		"email.empty":     "El correo electrónico no puede estar vacío",
		"email.email":     "El correo electrónico debe tener un formato válido",
		"email.email_tld": "El correo electrónico debe tener un formato válido",

		"nombre.type":        "El nombre debe ser un texto",
		"nombre.required":    "El nombre es un campo requerido",
		"nombre.empty":       "El nombre no puede estar vacío",
		"nombre.min":         "El nombre debe tener al menos 3 caracteres",
		"nombre.max":         "El nombre no debe exceder los 30 caracteres",
		"nombre.person_name": "El nombre solo puede contener letras y espacios",

		"password.type":           "La contraseña debe ser un texto",
		"password.required":       "La contraseña es un campo requerido",
		"password.empty":          "La contraseña no puede estar vacía",
		"password.min":            "La contraseña debe tener al menos 6 caracteres",
		"password.max":            "La contraseña no debe exceder los 30 caracteres",
		"password.password_chars": "La contraseña solo puede contener letras, números y caracteres especiales",

		"estado.type": "El estado debe ser un valor booleano",

		"imagen.type":         "La imagen debe ser una URL válida",
		"imagen.uri_or_empty": "La imagen debe tener un formato de URL válido",
		"imagen.user_image":   "La URL de la imagen no es válida",

		"cursos.type":      "Cursos debe ser un array",
		"cursos.object_id": "Cada curso debe ser un ID de MongoDB válido (24 caracteres hexadecimales)",
	}
}

// CourseIDsMessage is returned when a course id list is missing or empty
const CourseIDsMessage = "Se requiere un array de IDs de cursos"

// AddCoursesRequest carries the course ids appended to a user
type AddCoursesRequest struct {
	Courses []string `json:"cursos" validate:"required,min=1,dive,object_id"`
}

// ValidationMessages returns the field messages shown to API clients
func (AddCoursesRequest) ValidationMessages() map[string]string {
	return courseIDsMessages
}

// ReplaceCoursesRequest carries the full course list of a user, possibly empty
type ReplaceCoursesRequest struct {
	Courses []string `json:"cursos" validate:"required,dive,object_id"`
}

// ValidationMessages returns the field messages shown to API clients
func (ReplaceCoursesRequest) ValidationMessages() map[string]string {
	return courseIDsMessages
}

var courseIDsMessages = map[string]string{
	"cursos.type":      CourseIDsMessage,
	"cursos.required":  CourseIDsMessage,
	"cursos.min":       CourseIDsMessage,
	"cursos.object_id": "Cada curso debe ser un ID de MongoDB válido (24 caracteres hexadecimales)",
}

// UserPatch is the partial update extracted from a UserRequest.
// Empty strings and a nil Active mean "not supplied".
type UserPatch struct {
	Name     string
	Password string
	ImageURL string
	Active   *bool
	Courses  []primitive.ObjectID
}

// Patch converts a validated request into a partial update. The email in
// the body is ignored, the path email addresses the user.
func (r UserRequest) Patch() (UserPatch, error) {
	courses, err := ParseObjectIDs(r.Courses)
	if err != nil {
		return UserPatch{}, err
	}
	return UserPatch{
		Name:     r.Name,
		Password: r.Password,
		ImageURL: r.ImageURL,
		Active:   r.Active,
		Courses:  courses,
	}, nil
}

// NormalizeUser applies defaults to a validated request: estado true and an
// empty, duplicate free course list.
func NormalizeUser(req UserRequest) (models.User, error) {
	courses, err := ParseObjectIDs(req.Courses)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Active:   true,
		ImageURL: req.ImageURL,
		Courses:  courses,
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	return user, nil
}

// ParseObjectIDs parses hex ids keeping the first occurrence of each.
// The result is never nil.
func ParseObjectIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	seen := make(map[primitive.ObjectID]struct{}, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, fmt.Errorf("invalid course id %q: %w", h, err)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// UserEnvelope wraps a single user as {"usuario": ...}
type UserEnvelope struct {
	User interface{} `json:"usuario"`
}

// UserSummary is the active user listing projection, course references
// replaced by course titles.
type UserSummary struct {
	ID       primitive.ObjectID `json:"_id"`
	Email    string             `json:"email"`
	Name     string             `json:"nombre"`
	Password string             `json:"password"`
	Active   bool               `json:"estado"`
	ImageURL string             `json:"imagen,omitempty"`
	Courses  []string           `json:"cursos"`
}

// CourseMember is a user listed under a course, without course references
type CourseMember struct {
	ID       primitive.ObjectID `json:"_id"`
	Email    string             `json:"email"`
	Name     string             `json:"nombre"`
	Password string             `json:"password"`
	Active   bool               `json:"estado"`
	ImageURL string             `json:"imagen,omitempty"`
}

// NewCourseMember projects a user for the course member listing
func NewCourseMember(u models.User) CourseMember {
	return CourseMember{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Password: u.Password,
		Active:   u.Active,
		ImageURL: u.ImageURL,
	}
}
