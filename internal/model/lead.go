package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadSource classifies where a lead came from.
type LeadSource string

const (
	SourceWebsite       LeadSource = "Website"
	SourceReferral      LeadSource = "Referral"
	SourceSocialMedia   LeadSource = "Social Media"
	SourceColdCall      LeadSource = "Cold Call"
	SourceEmailCampaign LeadSource = "Email Campaign"
	SourceOther         LeadSource = "Other"
)

// Valid reports whether s is a known lead source.
func (s LeadSource) Valid() bool {
	switch s {
	case SourceWebsite, SourceReferral, SourceSocialMedia, SourceColdCall, SourceEmailCampaign, SourceOther:
		return true
	}
	return false
}

// LeadStatus tracks a lead through the pipeline.
type LeadStatus string

const (
	LeadNew       LeadStatus = "New"
	LeadContacted LeadStatus = "Contacted"
	LeadQualified LeadStatus = "Qualified"
	LeadConverted LeadStatus = "Converted"
	LeadRejected  LeadStatus = "Rejected"
)

// Valid reports whether s is a known lead status.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadQualified, LeadConverted, LeadRejected:
		return true
	}
	return false
}

// Lead is an owned resource; CreatedBy is the ownership edge.
type Lead struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Source    LeadSource         `bson:"source" json:"source"`
	Status    LeadStatus         `bson:"status" json:"status"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedBy primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (l *Lead) GetID() primitive.ObjectID    { return l.ID }
func (l *Lead) SetID(id primitive.ObjectID)  { l.ID = id }
func (l *Lead) GetOwner() primitive.ObjectID { return l.CreatedBy }
func (l *Lead) SetTimestamps(now time.Time)  { l.CreatedAt, l.UpdatedAt = now, now }
