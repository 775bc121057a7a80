package generic

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Owned is implemented by resource documents that carry an ownership
// edge (createdBy) and lifecycle timestamps.
type Owned interface {
	GetID() primitive.ObjectID
	SetID(primitive.ObjectID)
	GetOwner() primitive.ObjectID
	SetTimestamps(now time.Time)
}
