package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// EntityKind names the two document kinds managed by the service
type EntityKind string

const (
	KindCourse EntityKind = "course"
	KindUser   EntityKind = "user"
)

// ParseID converts a 24-hex identifier into an ObjectID
func ParseID(hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
