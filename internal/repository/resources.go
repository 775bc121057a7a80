package repository

import (
	"context"
	"errors"

	"leadsdesk/internal/errs"
	"leadsdesk/internal/model"
	"leadsdesk/pkg/generic"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ILeadRepository adds lead-specific lookups to the generic contract.
type ILeadRepository interface {
	generic.Repository[*model.Lead]
	FindByEmail(ctx context.Context, email string) (*model.Lead, error)
}

type LeadRepository struct {
	*generic.MongoRepository[*model.Lead]
	collection *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) ILeadRepository {
	col := db.Collection("leads")
	return &LeadRepository{
		MongoRepository: generic.NewMongoRepository[*model.Lead](col),
		collection:      col,
	}
}

// FindByEmail backs the duplicate-lead check.
func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*model.Lead, error) {
	var lead *model.Lead
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&lead); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return lead, nil
}

// IProjectRepository is the generic contract over the projects collection.
type IProjectRepository interface {
	generic.Repository[*model.Project]
}

func NewProjectRepository(db *mongo.Database) IProjectRepository {
	return generic.NewMongoRepository[*model.Project](db.Collection("projects"))
}

// IPaymentRepository is the generic contract over the payments collection.
type IPaymentRepository interface {
	generic.Repository[*model.Payment]
}

func NewPaymentRepository(db *mongo.Database) IPaymentRepository {
	return generic.NewMongoRepository[*model.Payment](db.Collection("payments"))
}

// IInvoiceRepository is the generic contract over the invoices collection.
type IInvoiceRepository interface {
	generic.Repository[*model.Invoice]
}

func NewInvoiceRepository(db *mongo.Database) IInvoiceRepository {
	return generic.NewMongoRepository[*model.Invoice](db.Collection("invoices"))
}
