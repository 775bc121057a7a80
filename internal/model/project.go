package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectStatus tracks a sales project lifecycle.
type ProjectStatus string

const (
	ProjectPending    ProjectStatus = "Pending"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectCancelled  ProjectStatus = "Cancelled"
)

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPending, ProjectInProgress, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

// Project is an owned resource; CreatedBy is the ownership edge.
type Project struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Client    string             `bson:"client" json:"client"`
	Status    ProjectStatus      `bson:"status" json:"status"`
	Budget    float64            `bson:"budget" json:"budget"`
	StartDate time.Time          `bson:"startDate" json:"startDate"`
	EndDate   *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	CreatedBy primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (p *Project) GetID() primitive.ObjectID    { return p.ID }
func (p *Project) SetID(id primitive.ObjectID)  { p.ID = id }
func (p *Project) GetOwner() primitive.ObjectID { return p.CreatedBy }
func (p *Project) SetTimestamps(now time.Time)  { p.CreatedAt, p.UpdatedAt = now, now }
