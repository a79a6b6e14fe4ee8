package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LocationAddress struct {
	Street   string `bson:"street,omitempty" json:"street,omitempty"`
	Nbr      int    `bson:"nbr,omitempty" json:"nbr,omitempty"`
	Box      int    `bson:"box,omitempty" json:"box,omitempty"`
	PostCode string `bson:"postCode,omitempty" json:"postCode,omitempty"`
	City     string `bson:"city,omitempty" json:"city,omitempty"`
	District string `bson:"district,omitempty" json:"district,omitempty"`
	Country  string `bson:"country,omitempty" json:"country,omitempty"`
}

// Location is a place where events happen. EventsID mirrors the events whose
// lieu_id points at this location.
type Location struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name            string               `bson:"name" json:"name"`
	Address         LocationAddress      `bson:"address" json:"address"`
	Geolocalisation *Geolocalisation     `bson:"geolocalisation,omitempty" json:"geolocalisation,omitempty"`
	EventsID        []primitive.ObjectID `bson:"eventsId" json:"eventsId"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
	DeletedAt       *time.Time           `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
}

type LocationSummary struct {
	ID      primitive.ObjectID `json:"_id"`
	Name    string             `json:"name"`
	Address LocationAddress    `json:"address"`
}

// LocationEventRow is one event row of the location full view: the event's
// public fields with its resolved participants and their count.
type LocationEventRow struct {
	ID                primitive.ObjectID `json:"_id"`
	Name              string             `json:"name"`
	StartAt           time.Time          `json:"startAt"`
	EndAt             time.Time          `json:"endAt"`
	Participants      []FriendView       `json:"participants"`
	ParticipantsCount int                `json:"participants_count"`
}

// LocationFull is the denormalized view of a location with its events inlined.
type LocationFull struct {
	ID              primitive.ObjectID `json:"_id"`
	Name            string             `json:"name"`
	Address         LocationAddress    `json:"address"`
	Geolocalisation *Geolocalisation   `json:"geolocalisation,omitempty"`
	Events          []LocationEventRow `json:"events"`
}

type LocationPatch struct {
	Name            *string
	Address         *LocationAddress
	Geolocalisation *Geolocalisation
}

func (p LocationPatch) Apply(l *Location) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Address != nil {
		l.Address = *p.Address
	}
	if p.Geolocalisation != nil {
		l.Geolocalisation = p.Geolocalisation
	}
}

func (p LocationPatch) SetDoc() bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Address != nil {
		set["address"] = *p.Address
	}
	if p.Geolocalisation != nil {
		set["geolocalisation"] = *p.Geolocalisation
	}
	return set
}
