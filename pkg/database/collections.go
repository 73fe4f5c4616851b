package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	RoutesCollection = "routes"
	TripsCollection  = "trips"
	StopsCollection  = "stops"
)

func createIndexes(ctx context.Context) {
	createRoutesIndexes(ctx)
	createTripsIndexes(ctx)
	createStopsIndexes(ctx)
}

func createRoutesIndexes(ctx context.Context) {
	routeIdentityIndexName := "RouteAgencyNumericID"

	_, err := GetCollection(RoutesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "primaryidentifier", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Options: &options.IndexOptions{
				Name: &routeIdentityIndexName,
			},
			Keys: bson.D{
				{Key: "datasource.datasetid", Value: 1},
				{Key: "numericid", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "displayshortname", Value: 1}},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createTripsIndexes(ctx context.Context) {
	_, err := GetCollection(TripsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "primaryidentifier", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "routeref", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "serviceref", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "otheridentifiers.GTFS-TripID", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "datasource.datasetid", Value: 1}},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createStopsIndexes(ctx context.Context) {
	_, err := GetCollection(StopsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "primaryidentifier", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "code", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "otheridentifiers", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "datasource.datasetid", Value: 1}},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
