package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultPhoto is the photo path assigned when registration supplies none.
const DefaultPhoto = "./images/default.png"

const (
	RoleUser = "user"
	// RoleSuperAdmin is granted at login time only when the email matches the
	// configured admin address. It is never stored on the user document.
	RoleSuperAdmin = "masterOfUnivers"
)

type Name struct {
	First string `bson:"first,omitempty" json:"first,omitempty"`
	Last  string `bson:"last,omitempty" json:"last,omitempty"`
}

type UserAddress struct {
	Street   string `bson:"street,omitempty" json:"street,omitempty"`
	Nbr      int    `bson:"nbr,omitempty" json:"nbr,omitempty"`
	Box      int    `bson:"box,omitempty" json:"box,omitempty"`
	PostCode string `bson:"postCode,omitempty" json:"postCode,omitempty"`
	City     string `bson:"city,omitempty" json:"city,omitempty"`
	Country  string `bson:"country,omitempty" json:"country,omitempty"`
}

type Study struct {
	StudyField string `bson:"studyField,omitempty" json:"studyField,omitempty"`
	Year       int    `bson:"year,omitempty" json:"year,omitempty"`
}

type Cap struct {
	HasCap       bool       `bson:"hasCap" json:"hasCap"`
	Provider     string     `bson:"provider,omitempty" json:"provider,omitempty"`
	DeliveryDate *time.Time `bson:"deliveryDate,omitempty" json:"deliveryDate,omitempty"`
	GoldStars    *int       `bson:"goldStars,omitempty" json:"goldStars,omitempty"`
	SilverStars  *int       `bson:"silverStars,omitempty" json:"silverStars,omitempty"`
	Comments     string     `bson:"comments,omitempty" json:"comments,omitempty"`
}

type StudentAssociation struct {
	Member        bool                `bson:"member" json:"member"`
	AssociationID *primitive.ObjectID `bson:"association_id,omitempty" json:"association_id,omitempty"`
	Function      string              `bson:"function,omitempty" json:"function,omitempty"`
}

type Geolocalisation struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	Precision int     `bson:"precision,omitempty" json:"precision,omitempty"`
}

// User is a student document in the "users" collection. Friends holds
// one-directional references to other users; student_association.association_id
// references a cercle whose members_ids must contain this user's id.
type User struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name               Name                 `bson:"name,omitempty" json:"name"`
	Pseudo             string               `bson:"pseudo" json:"pseudo"`
	Email              string               `bson:"email" json:"email"`
	Role               string               `bson:"role,omitempty" json:"role"`
	Address            *UserAddress         `bson:"address,omitempty" json:"address,omitempty"`
	DateOfBirth        time.Time            `bson:"dateOfBirth" json:"dateOfBirth"`
	Password           string               `bson:"password" json:"password,omitempty"`
	Study              *Study               `bson:"study,omitempty" json:"study,omitempty"`
	Phone              string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Photo              string               `bson:"photo,omitempty" json:"photo,omitempty"`
	Cap                *Cap                 `bson:"cap,omitempty" json:"cap,omitempty"`
	Friends            []primitive.ObjectID `bson:"friends" json:"friends"`
	StudentAssociation *StudentAssociation  `bson:"student_association,omitempty" json:"student_association,omitempty"`
	Geolocalisation    *Geolocalisation     `bson:"geolocalisation,omitempty" json:"geolocalisation,omitempty"`
	CreatedAt          time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time            `bson:"updatedAt" json:"updatedAt"`
	DeletedAt          *time.Time           `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
}

// FriendView is the thin projection returned when resolving a user's friends.
type FriendView struct {
	ID              primitive.ObjectID `json:"_id"`
	Name            Name               `json:"name"`
	Pseudo          string             `json:"pseudo"`
	Photo           string             `json:"photo,omitempty"`
	Geolocalisation *Geolocalisation   `json:"geolocalisation,omitempty"`
}

// MemberView is the public-safe projection used when listing a cercle's members.
type MemberView struct {
	ID     primitive.ObjectID `json:"_id"`
	Name   Name               `json:"name"`
	Pseudo string             `json:"pseudo"`
	Photo  string             `json:"photo,omitempty"`
	Study  *Study             `json:"study,omitempty"`
}

// UserFull joins the user with the names of the events they participate in and
// the cercle they belong to.
type UserFull struct {
	User
	Events []EventSummary `json:"events"`
	Cercle *CercleSummary `json:"cercle,omitempty"`
}
