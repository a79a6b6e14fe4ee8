package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cercle is a student association. Address references a location document and
// members_ids references users whose student_association points back here.
type Cercle struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name        string               `bson:"name" json:"name"`
	Hymne       string               `bson:"hymne,omitempty" json:"hymne,omitempty"`
	Address     primitive.ObjectID   `bson:"address" json:"address"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	MembersIDs  []primitive.ObjectID `bson:"members_ids" json:"members_ids"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
	DeletedAt   *time.Time           `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
}

// CercleSummary is the projection inlined into joined views.
type CercleSummary struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
}

// CerclePatch carries the fields a partial update may change. Nil fields are
// left untouched. The address reference, if supplied, is converted but its
// existence is not verified at write time.
type CerclePatch struct {
	Name        *string
	Hymne       *string
	Address     *primitive.ObjectID
	Description *string
}

// Apply merges the patch into c.
func (p CerclePatch) Apply(c *Cercle) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Hymne != nil {
		c.Hymne = *p.Hymne
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
}

// SetDoc returns the $set document for the supplied fields.
func (p CerclePatch) SetDoc() bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Hymne != nil {
		set["hymne"] = *p.Hymne
	}
	if p.Address != nil {
		set["address"] = *p.Address
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	return set
}
