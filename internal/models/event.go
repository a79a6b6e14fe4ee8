package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a happening organized by a cercle at a location. The referenced
// location's eventsId must contain this event's id.
type Event struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name            string               `bson:"name" json:"name"`
	StartAt         time.Time            `bson:"startAt" json:"startAt"`
	EndAt           time.Time            `bson:"endAt" json:"endAt"`
	Description     string               `bson:"description,omitempty" json:"description,omitempty"`
	LieuID          primitive.ObjectID   `bson:"lieu_id" json:"lieu_id"`
	ParticipantsIDs []primitive.ObjectID `bson:"participants_ids" json:"participants_ids"`
	Organizer       primitive.ObjectID   `bson:"organizer" json:"organizer"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
	DeletedAt       *time.Time           `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
}

type EventSummary struct {
	ID      primitive.ObjectID `json:"_id"`
	Name    string             `json:"name"`
	StartAt time.Time          `json:"startAt"`
	EndAt   time.Time          `json:"endAt"`
}

// EventFull is the three-way joined view: location, participants and organizer
// resolved to their public subsets.
type EventFull struct {
	ID           primitive.ObjectID `json:"_id"`
	Name         string             `json:"name"`
	StartAt      time.Time          `json:"startAt"`
	EndAt        time.Time          `json:"endAt"`
	Description  string             `json:"description,omitempty"`
	Location     *LocationSummary   `json:"location,omitempty"`
	Participants []FriendView       `json:"participants"`
	Organizer    *CercleSummary     `json:"organizer,omitempty"`
}

// EventPatch carries partial-update fields. Reference fields, if supplied, are
// converted but not existence-checked.
type EventPatch struct {
	Name        *string
	StartAt     *time.Time
	EndAt       *time.Time
	Description *string
	LieuID      *primitive.ObjectID
	Organizer   *primitive.ObjectID
}

func (p EventPatch) Apply(e *Event) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.StartAt != nil {
		e.StartAt = *p.StartAt
	}
	if p.EndAt != nil {
		e.EndAt = *p.EndAt
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.LieuID != nil {
		e.LieuID = *p.LieuID
	}
	if p.Organizer != nil {
		e.Organizer = *p.Organizer
	}
}

func (p EventPatch) SetDoc() bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.StartAt != nil {
		set["startAt"] = *p.StartAt
	}
	if p.EndAt != nil {
		set["endAt"] = *p.EndAt
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.LieuID != nil {
		set["lieu_id"] = *p.LieuID
	}
	if p.Organizer != nil {
		set["organizer"] = *p.Organizer
	}
	return set
}
