package gtfs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

const downloadAttempts = 5

// Open loads a schedule bundle from a local path or an http(s) URL
func Open(ctx context.Context, source string) (*Schedule, error) {
	var reader io.Reader

	if isValidUrl(source) {
		body, err := download(ctx, source)
		if err != nil {
			return nil, err
		}

		reader = bytes.NewReader(body)
	} else {
		file, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		reader = file
	}

	schedule := &Schedule{}
	if err := schedule.ParseFile(reader); err != nil {
		return nil, err
	}

	log.Info().
		Str("source", source).
		Int("routes", len(schedule.Routes)).
		Int("trips", len(schedule.Trips)).
		Int("stops", len(schedule.Stops)).
		Msg("Loaded schedule")

	return schedule, nil
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return u.Scheme == "http" || u.Scheme == "https"
}

func download(ctx context.Context, source string) ([]byte, error) {
	client := &http.Client{Timeout: 5 * time.Minute}

	var body []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", "curl/7.54.1")

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("download %s: %s", source, resp.Status)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("download %s: %s", source, resp.Status))
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("source", source).Str("wait", wait.String()).Msg("Retrying download")
	}

	retry := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), downloadAttempts), ctx)
	if err := backoff.RetryNotify(operation, retry, notify); err != nil {
		return nil, err
	}

	return body, nil
}
