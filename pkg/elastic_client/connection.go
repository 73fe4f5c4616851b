package elastic_client

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/rs/zerolog/log"
	"github.com/travigo/normaliser/pkg/util"
)

var Client *elasticsearch.Client
var bulkIndexer esutil.BulkIndexer

var ErrNotConfigured = errors.New("elasticsearch configuration not set")

func Connect(required bool) error {
	env := util.GetEnvironmentVariables()

	if env["NORMALISER_ELASTICSEARCH_ADDRESS"] == "" {
		if required {
			return ErrNotConfigured
		}

		log.Info().Msg("Skipping Elasticsearch setup")
		return nil
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if util.EnvironmentFlag("ELASTICSEARCH_INSECURE") {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	retryBackoff := backoff.NewExponentialBackOff()

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{env["NORMALISER_ELASTICSEARCH_ADDRESS"]},
		Username:  env["NORMALISER_ELASTICSEARCH_USERNAME"],
		Password:  env["NORMALISER_ELASTICSEARCH_PASSWORD"],
		Transport: transport,

		RetryOnStatus: []int{502, 503, 504, 429},

		RetryBackoff: func(i int) time.Duration {
			if i == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},
		MaxRetries: 5,
	})
	if err != nil {
		return err
	}

	if _, err := es.Info(); err != nil {
		return err
	}

	Client = es

	bulkIndexer, err = esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:        es,
		FlushInterval: 15 * time.Second,
	})
	if err != nil {
		return err
	}

	log.Info().Msgf("Elasticsearch client setup for %s", env["NORMALISER_ELASTICSEARCH_ADDRESS"])

	return nil
}

func IndexRequest(ctx context.Context, indexName string, documentID string, document io.ReadSeeker) error {
	if Client == nil {
		return ErrNotConfigured
	}

	return bulkIndexer.Add(
		ctx,
		esutil.BulkIndexerItem{
			Index:      indexName,
			Action:     "index",
			DocumentID: documentID,
			Body:       document,
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err != nil {
					log.Error().Err(err).Str("indexName", indexName).Msg("Failed to index document")
				} else {
					log.Error().Str("type", res.Error.Type).Str("reason", res.Error.Reason).Msg("Failed to index document")
				}
			},
		},
	)
}

// WaitUntilQueueEmpty flushes the bulk indexer. A new indexer is started
// afterwards so the client can keep being used.
func WaitUntilQueueEmpty(ctx context.Context) error {
	if bulkIndexer == nil {
		return nil
	}

	if err := bulkIndexer.Close(ctx); err != nil {
		return err
	}

	stats := bulkIndexer.Stats()
	log.Info().Uint64("indexed", stats.NumIndexed).Uint64("failed", stats.NumFailed).Msg("Index queue emptied")

	var err error
	bulkIndexer, err = esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:        Client,
		FlushInterval: 15 * time.Second,
	})

	return err
}
