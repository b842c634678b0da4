package incident

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
)

func (dbService *IncidentDBService) createIndexesForFieldsCollection() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionFields().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

var fieldSortOnName = bson.D{
	primitive.E{Key: "name", Value: 1},
}

func (dbService *IncidentDBService) GetFieldDefinitions() (fields []incidentTypes.FieldDefinition, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().SetSort(fieldSortOnName)
	cursor, err := dbService.collectionFields().Find(ctx, bson.M{}, opts)
	if err != nil {
		return fields, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &fields)
	return fields, err
}

func (dbService *IncidentDBService) GetFieldDefinitionByID(fieldID string) (field incidentTypes.FieldDefinition, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(fieldID)
	if err != nil {
		return field, err
	}

	err = dbService.collectionFields().FindOne(ctx, bson.M{"_id": _id}).Decode(&field)
	return field, err
}

func (dbService *IncidentDBService) GetFieldDefinitionByName(name string) (field incidentTypes.FieldDefinition, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	err = dbService.collectionFields().FindOne(ctx, bson.M{"name": name}).Decode(&field)
	return field, err
}

func (dbService *IncidentDBService) CreateFieldDefinition(field *incidentTypes.FieldDefinition) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	ret, err := dbService.collectionFields().InsertOne(ctx, field)
	if err != nil {
		return err
	}
	field.ID = ret.InsertedID.(primitive.ObjectID)
	return nil
}

func (dbService *IncidentDBService) UpdateFieldDefinition(fieldID string, update incidentTypes.FieldDefinition) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(fieldID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionFields().UpdateOne(ctx,
		bson.M{"_id": _id},
		bson.M{"$set": bson.M{
			"name":    update.Name,
			"type":    update.Type,
			"options": update.Options,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteFieldDefinition removes the definition only; values already stored in
// report fields maps stay behind as display-only data.
func (dbService *IncidentDBService) DeleteFieldDefinition(fieldID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(fieldID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionFields().DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
