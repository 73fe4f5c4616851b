package dataimporter

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/travigo/normaliser/pkg/ctdf"
	"github.com/travigo/normaliser/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultMongoBatchSize = 1000

// MongoSink upserts every record by its primary identifier and then removes
// the records an earlier import of the same agency left behind
type MongoSink struct {
	BatchSize int
}

func (s *MongoSink) Name() string {
	return OutputMongo
}

func (s *MongoSink) Write(ctx context.Context, feed *ctdf.Feed) error {
	collections := []struct {
		name   string
		models []mongo.WriteModel
	}{
		{database.RoutesCollection, upsertModels(feed.Routes, func(r *ctdf.Route) string { return r.PrimaryIdentifier })},
		{database.TripsCollection, upsertModels(feed.Trips, func(t *ctdf.Trip) string { return t.PrimaryIdentifier })},
		{database.StopsCollection, upsertModels(feed.Stops, func(s *ctdf.Stop) string { return s.PrimaryIdentifier })},
	}

	for _, collection := range collections {
		if err := s.bulkWrite(ctx, collection.name, collection.models); err != nil {
			return err
		}

		if err := removeStale(ctx, collection.name, feed.DataSource); err != nil {
			return err
		}
	}

	return nil
}

func (s *MongoSink) bulkWrite(ctx context.Context, collectionName string, models []mongo.WriteModel) error {
	batchSize := s.BatchSize
	if batchSize <= 0 {
		batchSize = defaultMongoBatchSize
	}

	collection := database.GetCollection(collectionName)

	for start := 0; start < len(models); start += batchSize {
		end := start + batchSize
		if end > len(models) {
			end = len(models)
		}

		log.Info().Str("collection", collectionName).Int("length", end-start).Msg("Bulk write")
		if _, err := collection.BulkWrite(ctx, models[start:end], options.BulkWrite().SetOrdered(false)); err != nil {
			return err
		}
	}

	return nil
}

func upsertModels[T any](records []T, identifier func(T) string) []mongo.WriteModel {
	models := make([]mongo.WriteModel, 0, len(records))

	for _, record := range records {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"primaryidentifier": identifier(record)}).
			SetReplacement(record).
			SetUpsert(true))
	}

	return models
}

func staleFilter(datasource *ctdf.DataSource) bson.M {
	return bson.M{
		"datasource.datasetid": datasource.DatasetID,
		"datasource.timestamp": bson.M{"$lt": datasource.Timestamp},
	}
}

func removeStale(ctx context.Context, collectionName string, datasource *ctdf.DataSource) error {
	if datasource == nil {
		return nil
	}

	result, err := database.GetCollection(collectionName).DeleteMany(ctx, staleFilter(datasource))
	if err != nil {
		return err
	}

	if result.DeletedCount > 0 {
		log.Info().Str("collection", collectionName).Int64("length", result.DeletedCount).Msg("Removed stale records")
	}

	return nil
}
