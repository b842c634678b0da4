package incident

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
)

func (dbService *IncidentDBService) createIndexesForOffendersCollection() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionOffenders().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

var offenderSortOnName = bson.D{
	primitive.E{Key: "name", Value: 1},
}

func (dbService *IncidentDBService) GetOffenders() (offenders []incidentTypes.Offender, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().SetSort(offenderSortOnName)
	cursor, err := dbService.collectionOffenders().Find(ctx, bson.M{}, opts)
	if err != nil {
		return offenders, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &offenders)
	return offenders, err
}

func (dbService *IncidentDBService) GetOffenderByName(name string) (offender incidentTypes.Offender, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	err = dbService.collectionOffenders().FindOne(ctx, bson.M{"name": name}).Decode(&offender)
	return offender, err
}

func (dbService *IncidentDBService) CreateOffender(offender *incidentTypes.Offender) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	ret, err := dbService.collectionOffenders().InsertOne(ctx, offender)
	if err != nil {
		return err
	}
	offender.ID = ret.InsertedID.(primitive.ObjectID)
	return nil
}

func (dbService *IncidentDBService) RenameOffender(offenderID string, newName string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(offenderID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionOffenders().UpdateOne(ctx,
		bson.M{"_id": _id},
		bson.M{"$set": bson.M{"name": newName}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (dbService *IncidentDBService) DeleteOffender(offenderID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(offenderID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionOffenders().DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
