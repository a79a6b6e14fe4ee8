// Command seed rebuilds the database from scratch: it drops the four
// collections, recreates them with their schema validators, puts the unique
// email index back and inserts a small linked data set for local development.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jocke0406/Back-MyM/internal/config"
	"github.com/jocke0406/Back-MyM/internal/models"
	"github.com/jocke0406/Back-MyM/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDatabase)
	for name, schema := range schemas() {
		if err := db.Collection(name).Drop(ctx); err != nil {
			log.Fatalf("could not drop %s: %v", name, err)
		}
		opts := options.CreateCollection().SetValidator(bson.M{"$jsonSchema": schema})
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			log.Fatalf("could not create %s: %v", name, err)
		}
		log.Printf("collection %s recreated", name)
	}

	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection("users").Indexes().CreateOne(ctx, emailIndex); err != nil {
		log.Fatalf("could not create email index: %v", err)
	}

	if err := insertSamples(ctx, db); err != nil {
		log.Fatalf("could not insert sample data: %v", err)
	}
	log.Println("seed complete")
}

// schemas mirrors the validators enforced on the live database. Only the
// required core is enforced; optional fields stay free-form.
func schemas() map[string]bson.M {
	objectID := bson.M{"bsonType": "objectId"}
	objectIDArray := bson.M{"bsonType": "array", "items": objectID}
	date := bson.M{"bsonType": "date"}

	return map[string]bson.M{
		"users": {
			"bsonType": "object",
			"required": bson.A{"pseudo", "email", "dateOfBirth", "password"},
			"properties": bson.M{
				"pseudo":      bson.M{"bsonType": "string", "maxLength": 50},
				"email":       bson.M{"bsonType": "string", "pattern": `^.+@.+\..+$`},
				"role":        bson.M{"bsonType": "string"},
				"dateOfBirth": date,
				"password":    bson.M{"bsonType": "string"},
				"friends":     objectIDArray,
				"student_association": bson.M{
					"bsonType": "object",
					"properties": bson.M{
						"member":         bson.M{"bsonType": "bool"},
						"association_id": objectID,
						"function":       bson.M{"bsonType": "string"},
					},
				},
				"geolocalisation": geoSchema(),
			},
		},
		"cercles": {
			"bsonType": "object",
			"required": bson.A{"name", "address"},
			"properties": bson.M{
				"name":        bson.M{"bsonType": "string"},
				"hymne":       bson.M{"bsonType": "string"},
				"address":     objectID,
				"description": bson.M{"bsonType": "string"},
				"members_ids": objectIDArray,
			},
		},
		"locations": {
			"bsonType": "object",
			"required": bson.A{"name", "address"},
			"properties": bson.M{
				"name":            bson.M{"bsonType": "string"},
				"address":         bson.M{"bsonType": "object"},
				"geolocalisation": geoSchema(),
				"eventsId":        objectIDArray,
			},
		},
		"events": {
			"bsonType": "object",
			"required": bson.A{"name", "startAt", "endAt", "lieu_id", "organizer"},
			"properties": bson.M{
				"name":             bson.M{"bsonType": "string"},
				"startAt":          date,
				"endAt":            date,
				"description":      bson.M{"bsonType": "string"},
				"lieu_id":          objectID,
				"participants_ids": objectIDArray,
				"organizer":        objectID,
			},
		},
	}
}

func geoSchema() bson.M {
	return bson.M{
		"bsonType": "object",
		"properties": bson.M{
			"latitude":  bson.M{"bsonType": "double"},
			"longitude": bson.M{"bsonType": "double"},
			"precision": bson.M{"bsonType": "int"},
		},
	}
}

// insertSamples creates one location, one cercle based there, one member user
// and one upcoming event, with every cross reference consistent.
func insertSamples(ctx context.Context, db *mongo.Database) error {
	now := time.Now()
	locationID := primitive.NewObjectID()
	cercleID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	eventID := primitive.NewObjectID()

	hash, err := utils.HashPassword("changeMe123!")
	if err != nil {
		return err
	}

	location := models.Location{
		ID:   locationID,
		Name: "Cercle des Sciences, local B7",
		Address: models.LocationAddress{
			Street:   "Avenue Franklin Roosevelt",
			Nbr:      50,
			PostCode: "1050",
			City:     "Bruxelles",
			Country:  "Belgique",
		},
		Geolocalisation: &models.Geolocalisation{Latitude: 50.8115, Longitude: 4.3811, Precision: 10},
		EventsID:        []primitive.ObjectID{eventID},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	cercle := models.Cercle{
		ID:          cercleID,
		Name:        "Cercle des Sciences",
		Hymne:       "Semeur, semeur...",
		Address:     locationID,
		Description: "Le cercle facultaire des sciences.",
		MembersIDs:  []primitive.ObjectID{userID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	user := models.User{
		ID:          userID,
		Name:        models.Name{First: "Justine", Last: "Dubois"},
		Pseudo:      "Jus2Pomme",
		Email:       "justine.dubois@example.be",
		Role:        models.RoleUser,
		DateOfBirth: time.Date(2002, 4, 12, 0, 0, 0, 0, time.UTC),
		Password:    hash,
		Study:       &models.Study{StudyField: "Chimie", Year: 2},
		Photo:       models.DefaultPhoto,
		Friends:     []primitive.ObjectID{},
		StudentAssociation: &models.StudentAssociation{
			Member:        true,
			AssociationID: &cercleID,
			Function:      "tresorier",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	event := models.Event{
		ID:              eventID,
		Name:            "Bapteme 2026",
		StartAt:         now.AddDate(0, 1, 0),
		EndAt:           now.AddDate(0, 1, 0).Add(6 * time.Hour),
		Description:     "Ouvert a tous les etudiants.",
		LieuID:          locationID,
		ParticipantsIDs: []primitive.ObjectID{userID},
		Organizer:       cercleID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := db.Collection("locations").InsertOne(ctx, location); err != nil {
		return err
	}
	if _, err := db.Collection("cercles").InsertOne(ctx, cercle); err != nil {
		return err
	}
	if _, err := db.Collection("users").InsertOne(ctx, user); err != nil {
		return err
	}
	_, err = db.Collection("events").InsertOne(ctx, event)
	return err
}
