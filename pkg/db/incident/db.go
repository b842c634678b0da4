package incident

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/circlekay00/theft-app/pkg/db"
)

// collection names
const (
	COLLECTION_NAME_CATEGORIES = "categories"
	COLLECTION_NAME_OFFENDERS  = "offenders"
	COLLECTION_NAME_FIELDS     = "fields"
	COLLECTION_NAME_REPORTS    = "reports"
)

type IncidentDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	DBName          string
}

func NewIncidentDBService(configs db.DBConfig) (*IncidentDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()
	if err != nil {
		return nil, err
	}

	incidentDBSc := &IncidentDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		DBName:          configs.DBName,
	}

	if err := incidentDBSc.ensureIndexes(); err != nil {
		slog.Error("Error ensuring indexes for incident DB", slog.String("error", err.Error()))
	}

	return incidentDBSc, nil
}

func (dbService *IncidentDBService) collectionCategories() *mongo.Collection {
	return dbService.DBClient.Database(dbService.DBName).Collection(COLLECTION_NAME_CATEGORIES)
}

func (dbService *IncidentDBService) collectionOffenders() *mongo.Collection {
	return dbService.DBClient.Database(dbService.DBName).Collection(COLLECTION_NAME_OFFENDERS)
}

func (dbService *IncidentDBService) collectionFields() *mongo.Collection {
	return dbService.DBClient.Database(dbService.DBName).Collection(COLLECTION_NAME_FIELDS)
}

func (dbService *IncidentDBService) collectionReports() *mongo.Collection {
	return dbService.DBClient.Database(dbService.DBName).Collection(COLLECTION_NAME_REPORTS)
}

func (dbService *IncidentDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *IncidentDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for incident DB")

	if err := dbService.createIndexesForCategoriesCollection(); err != nil {
		slog.Error("Error creating index for categories", slog.String("error", err.Error()))
	}
	if err := dbService.createIndexesForOffendersCollection(); err != nil {
		slog.Error("Error creating index for offenders", slog.String("error", err.Error()))
	}
	if err := dbService.createIndexesForFieldsCollection(); err != nil {
		slog.Error("Error creating index for fields", slog.String("error", err.Error()))
	}
	if err := dbService.createIndexesForReportsCollection(); err != nil {
		slog.Error("Error creating index for reports", slog.String("error", err.Error()))
	}
	return nil
}
