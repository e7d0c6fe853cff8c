package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CourseCollection is the MongoDB collection holding courses
const CourseCollection = "cursos"

// Course is a course document. Courses are never deleted, only deactivated.
type Course struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty" example:"66f1c2a9e4b0a1b2c3d4e5f6"`
	Title       string             `json:"titulo" bson:"titulo" example:"Programación en Go"`
	Description string             `json:"descripcion" bson:"descripcion" example:"Curso introductorio"`
	Active      bool               `json:"estado" bson:"estado" example:"true"`
	ImageURL    string             `json:"imagen,omitempty" bson:"imagen,omitempty" example:"https://cdn.example.com/go.png"`
	Students    int                `json:"alumnos" bson:"alumnos" example:"0"`
	Rating      float64            `json:"calificacion" bson:"calificacion" example:"4.5"`
}
