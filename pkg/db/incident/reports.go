package incident

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
)

func (dbService *IncidentDBService) createIndexesForReportsCollection() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "createdAt", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "storeNumber", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "reporterId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
			},
		},
	}
	_, err := dbService.collectionReports().Indexes().CreateMany(ctx, indexes)
	return err
}

var reportSortOnCreatedAt = bson.D{
	primitive.E{Key: "createdAt", Value: -1},
	primitive.E{Key: "_id", Value: 1},
}

func (dbService *IncidentDBService) CreateReport(report *incidentTypes.Report) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	ret, err := dbService.collectionReports().InsertOne(ctx, report)
	if err != nil {
		return err
	}
	report.ID = ret.InsertedID.(primitive.ObjectID)
	return nil
}

func (dbService *IncidentDBService) GetReportByID(reportID string) (report incidentTypes.Report, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(reportID)
	if err != nil {
		return report, err
	}

	err = dbService.collectionReports().FindOne(ctx, bson.M{"_id": _id}).Decode(&report)
	return report, err
}

// GetReports loads the reports matching the given scope filter, newest first.
// The scope is the visibility restriction of the caller (empty for
// superadmin); multi criteria filtering happens in memory afterwards.
func (dbService *IncidentDBService) GetReports(scope bson.M) (reports []incidentTypes.Report, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if scope == nil {
		scope = bson.M{}
	}

	opts := options.Find().SetSort(reportSortOnCreatedAt)
	if dbService.noCursorTimeout {
		opts.SetNoCursorTimeout(true)
	}

	cursor, err := dbService.collectionReports().Find(ctx, scope, opts)
	if err != nil {
		return reports, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &reports)
	return reports, err
}

func (dbService *IncidentDBService) GetReportCountForQuery(filter bson.M) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionReports().CountDocuments(ctx, filter)
}

// UpdateReport applies the given $set document to one report. The caller is
// responsible for never including storeNumber, reporterId or createdAt.
func (dbService *IncidentDBService) UpdateReport(reportID string, set bson.M) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(reportID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionReports().UpdateOne(ctx,
		bson.M{"_id": _id},
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

func (dbService *IncidentDBService) DeleteReport(reportID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(reportID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionReports().DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// FindAndExecuteOnReports iterates over the reports matching the filter and
// calls fn on each, newest first. Used by the batch export job to stream
// without loading everything into memory.
func (dbService *IncidentDBService) FindAndExecuteOnReports(
	ctx context.Context,
	filter bson.M,
	fn func(report incidentTypes.Report) error,
) error {
	opts := options.Find().SetSort(reportSortOnCreatedAt)

	cursor, err := dbService.collectionReports().Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var report incidentTypes.Report
		if err = cursor.Decode(&report); err != nil {
			slog.Error("Error while decoding report", slog.String("error", err.Error()))
			continue
		}

		if err = fn(report); err != nil {
			slog.Error("Error executing function on report", slog.String("reportID", report.ID.Hex()), slog.String("error", err.Error()))
			continue
		}
	}
	return nil
}
