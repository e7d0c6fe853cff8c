package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// UserCollection is the MongoDB collection holding users
const UserCollection = "usuarios"

// User defines the user document. Email is the addressing key for updates.
type User struct {
	ID       primitive.ObjectID   `json:"_id" bson:"_id,omitempty" example:"66f1c2a9e4b0a1b2c3d4e5f7"`
	Email    string               `json:"email" bson:"email" example:"ana@correo.com"`
	Name     string               `json:"nombre" bson:"nombre" example:"Ana Pérez"`
	Password string               `json:"password" bson:"password"` // stored as given
	Active   bool                 `json:"estado" bson:"estado" example:"true"`
	ImageURL string               `json:"imagen,omitempty" bson:"imagen,omitempty"`
	Courses  []primitive.ObjectID `json:"cursos" bson:"cursos"` // ordered, no duplicates
}
