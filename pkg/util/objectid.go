package util

import (
	"fmt"

	"leadsdesk/internal/errs"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseObjectID converts a hex string to an ObjectID. Invalid input maps
// to errs.ErrInvalidInput so handlers report it as a validation failure.
func ParseObjectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id format", errs.ErrInvalidInput)
	}
	return objID, nil
}
