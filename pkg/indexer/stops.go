package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"
	"github.com/travigo/normaliser/pkg/ctdf"
	"github.com/travigo/normaliser/pkg/database"
	"github.com/travigo/normaliser/pkg/elastic_client"
	"go.mongodb.org/mongo-driver/bson"
)

const stopIndexMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 1
	},
	"mappings": {
		"properties": {
			"PrimaryIdentifier": {
				"type": "keyword"
			},
			"AgencyRef": {
				"type": "keyword"
			},
			"Code": {
				"type": "keyword"
			},
			"OtherIdentifiers": {
				"type": "text",
				"fields": {
					"keyword": {
						"type": "keyword",
						"ignore_above": 256
					}
				}
			},
			"Name": {
				"type": "text",
				"fields": {
					"keyword": {
						"type": "keyword",
						"ignore_above": 256
					},
					"search_as_you_type": {
						"type": "search_as_you_type"
					}
				}
			},
			"Location": {
				"type": "geo_point"
			},
			"ParentStation": {
				"type": "keyword"
			}
		}
	}
}`

func StopIndexPrefix(agencyRef string) string {
	return fmt.Sprintf("normaliser-stops-%s", agencyRef)
}

// IndexStops writes the stops of one agency into a fresh index and removes the
// indexes of earlier runs once it is complete
func IndexStops(ctx context.Context, agencyRef string, stops []*ctdf.Stop) error {
	indexName := fmt.Sprintf("%s-%d", StopIndexPrefix(agencyRef), time.Now().Unix())

	if err := createStopIndex(ctx, indexName); err != nil {
		return err
	}

	for _, stop := range stops {
		jsonStop, err := json.Marshal(stopDocument(agencyRef, stop))
		if err != nil {
			return err
		}

		if err := elastic_client.IndexRequest(ctx, indexName, stop.PrimaryIdentifier, bytes.NewReader(jsonStop)); err != nil {
			return err
		}
	}

	if err := elastic_client.WaitUntilQueueEmpty(ctx); err != nil {
		return err
	}

	log.Info().Str("index", indexName).Int("length", len(stops)).Msg("Indexed stops")

	return deleteOldIndexes(ctx, StopIndexPrefix(agencyRef)+"-*", indexName)
}

func IndexStopsFromMongo(ctx context.Context, agencyRef string) error {
	stopsCollection := database.GetCollection(database.StopsCollection)

	cursor, err := stopsCollection.Find(ctx, bson.M{"datasource.datasetid": agencyRef})
	if err != nil {
		return err
	}

	var stops []*ctdf.Stop
	if err := cursor.All(ctx, &stops); err != nil {
		return err
	}

	return IndexStops(ctx, agencyRef, stops)
}

func stopDocument(agencyRef string, stop *ctdf.Stop) map[string]interface{} {
	return map[string]interface{}{
		"PrimaryIdentifier": stop.PrimaryIdentifier,
		"AgencyRef":         agencyRef,
		"Code":              stop.Code,
		"Name":              stop.Name,
		"OtherIdentifiers":  stop.OtherIdentifiers,
		"ParentStation":     stop.ParentStation,
		"Location": map[string]float64{
			"lat": stop.Latitude,
			"lon": stop.Longitude,
		},
	}
}

func createStopIndex(ctx context.Context, indexName string) error {
	indexReq := esapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(stopIndexMapping),
	}

	resp, err := indexReq.Do(ctx, elastic_client.Client)
	if err != nil {
		return fmt.Errorf("create index %s: %w", indexName, err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		responseBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("create index %s: %s %s", indexName, resp.Status(), responseBytes)
	}

	return nil
}
