package dto

import "github.com/yigit/academia/internal/app/models"

// CourseRequest represents the body of course create, update and bulk import
type CourseRequest struct {
	Title       string   `json:"titulo" validate:"required,min=3,max=100,course_text" example:"Programación en Go"`
	Description string   `json:"descripcion" validate:"max=500,course_text" example:"Curso introductorio"`
	Active      *bool    `json:"estado" example:"true"`
	ImageURL    string   `json:"imagen" validate:"uri_or_empty,course_image" example:"https://cdn.example.com/go.png"`
	Students    *int     `json:"alumnos" validate:"omitempty,min=0" example:"0"`
	Rating      *float64 `json:"calificacion" validate:"omitempty,min=0,max=5" example:"4.5"`
}

// ValidationMessages returns the field messages shown to API clients
func (CourseRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"titulo.type":        "El título debe ser un texto",
		"titulo.required":    "El título es un campo requerido",
		"titulo.empty":       "El título no puede estar vacío",
		"titulo.min":         "El título debe tener al menos 3 caracteres",
		"titulo.max":         "El título no debe exceder los 100 caracteres",
		"titulo.course_text": "El título contiene caracteres inválidos",

		"descripcion.type":        "La descripción debe ser un texto",
		"descripcion.max":         "La descripción no debe exceder los 500 caracteres",
		"descripcion.course_text": "La descripción contiene caracteres inválidos",

		"estado.type": "El estado debe ser un valor booleano, verdadero o falso",

		"imagen.type":         "La imagen debe ser una URL válida",
		"imagen.uri_or_empty": "La imagen debe tener un formato de URL válido",
		"imagen.course_image": "La URL de la imagen no es válida",

		"alumnos.type": "El número de alumnos debe ser un número entero",
		"alumnos.min":  "El número de alumnos no puede ser negativo",

		"calificacion.type": "La calificación debe ser un número",
		"calificacion.min":  "La calificación no puede ser menor que 0",
		"calificacion.max":  "La calificación no puede ser mayor que 5",
	}
}

// NormalizeCourse applies defaults to a validated request: estado true,
// alumnos 0 and calificacion 0 when absent.
func NormalizeCourse(req CourseRequest) models.Course {
	course := models.Course{
		Title:       req.Title,
		Description: req.Description,
		Active:      true,
		ImageURL:    req.ImageURL,
	}
	if req.Active != nil {
		course.Active = *req.Active
	}
	if req.Students != nil {
		course.Students = *req.Students
	}
	if req.Rating != nil {
		course.Rating = *req.Rating
	}
	return course
}

// CourseBatchResponse is returned by the course bulk import
type CourseBatchResponse struct {
	Message string          `json:"message" example:"Cursos guardados exitosamente"`
	Courses []models.Course `json:"cursos"`
}

// CourseBatchSavedMessage is the bulk import confirmation
const CourseBatchSavedMessage = "Cursos guardados exitosamente"
