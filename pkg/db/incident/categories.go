package incident

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
)

func (dbService *IncidentDBService) createIndexesForCategoriesCollection() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionCategories().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

var categorySortOnName = bson.D{
	primitive.E{Key: "name", Value: 1},
}

func (dbService *IncidentDBService) GetCategories() (categories []incidentTypes.Category, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().SetSort(categorySortOnName)
	cursor, err := dbService.collectionCategories().Find(ctx, bson.M{}, opts)
	if err != nil {
		return categories, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &categories)
	return categories, err
}

func (dbService *IncidentDBService) GetCategoryByID(categoryID string) (category incidentTypes.Category, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return category, err
	}

	err = dbService.collectionCategories().FindOne(ctx, bson.M{"_id": _id}).Decode(&category)
	return category, err
}

func (dbService *IncidentDBService) GetCategoryByName(name string) (category incidentTypes.Category, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	err = dbService.collectionCategories().FindOne(ctx, bson.M{"name": name}).Decode(&category)
	return category, err
}

func (dbService *IncidentDBService) CreateCategory(category *incidentTypes.Category) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if category.Subcategories == nil {
		category.Subcategories = []string{}
	}

	ret, err := dbService.collectionCategories().InsertOne(ctx, category)
	if err != nil {
		return err
	}
	category.ID = ret.InsertedID.(primitive.ObjectID)
	return nil
}

func (dbService *IncidentDBService) RenameCategory(categoryID string, newName string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionCategories().UpdateOne(ctx,
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

// AddSubcategory appends the name if not already present (exact match). The
// returned flag is false when the subcategory was already in the list.
func (dbService *IncidentDBService) AddSubcategory(categoryID string, name string) (added bool, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return false, err
	}

	res, err := dbService.collectionCategories().UpdateOne(ctx,
		bson.M{"_id": _id},
		bson.M{"$addToSet": bson.M{"subcategories": name}},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, mongo.ErrNoDocuments
	}
	return res.ModifiedCount > 0, nil
}

func (dbService *IncidentDBService) RemoveSubcategory(categoryID string, name string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionCategories().UpdateOne(ctx,
		bson.M{"_id": _id},
		bson.M{"$pull": bson.M{"subcategories": name}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteCategory removes the category only; reports referencing it keep their
// categoryId and resolve to the fallback name at read time.
func (dbService *IncidentDBService) DeleteCategory(categoryID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionCategories().DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
