package redis_client

import (
	"context"
	"strconv"

	"github.com/adjust/rmq/v5"
	"github.com/redis/go-redis/v9"
	"github.com/travigo/normaliser/pkg/util"
)

var Client *redis.Client
var QueueConnection rmq.Connection

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

// Configured reports whether a Redis address was given in the environment
func Configured() bool {
	return util.GetEnvironmentVariables()["NORMALISER_REDIS_ADDRESS"] != ""
}

func Connect() error {
	address := defaultConnectionAddress
	password := defaultConnectionPassword
	database := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["NORMALISER_REDIS_ADDRESS"] != "" {
		address = env["NORMALISER_REDIS_ADDRESS"]
	}

	if env["NORMALISER_REDIS_PASSWORD"] != "" {
		password = env["NORMALISER_REDIS_PASSWORD"]
	}

	if env["NORMALISER_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["NORMALISER_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	return ConnectWithOptions(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})
}

func ConnectWithOptions(options *redis.Options) error {
	client := redis.NewClient(options)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	queueConnection, err := rmq.OpenConnectionWithRedisClient("normaliser", client, nil)
	if err != nil {
		return err
	}

	Client = client
	QueueConnection = queueConnection

	return nil
}
