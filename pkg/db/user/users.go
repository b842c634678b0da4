package user

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	userTypes "github.com/circlekay00/theft-app/pkg/types/user"
)

var userSortOnName = bson.D{
	primitive.E{Key: "name", Value: 1},
}

// GetUserByID loads the users document for the given uid. The report core
// consumes only role and storeNumber from it.
func (dbService *UserDBService) GetUserByID(uid string) (user userTypes.User, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	err = dbService.collectionUsers().FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
	return user, err
}

func (dbService *UserDBService) GetUsers() (users []userTypes.User, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().SetSort(userSortOnName)
	cursor, err := dbService.collectionUsers().Find(ctx, bson.M{}, opts)
	if err != nil {
		return users, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &users)
	return users, err
}

// UpdateUser applies the given $set document to one user (name, email, role,
// storeNumber from the management screens).
func (dbService *UserDBService) UpdateUser(uid string, set bson.M) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionUsers().UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
