package dataimporter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/travigo/normaliser/pkg/ctdf"
)

// JSONSink writes the public view of a feed to <Directory>/<agency>.json
type JSONSink struct {
	Directory string
}

func (s *JSONSink) Name() string {
	return OutputJSON
}

func (s *JSONSink) Write(ctx context.Context, feed *ctdf.Feed) error {
	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, feed)
	if err != nil {
		return err
	}

	feedJSON, err := json.MarshalIndent(reduced, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.Directory, 0o755); err != nil {
		return err
	}

	path := filepath.Join(s.Directory, fmt.Sprintf("%s.json", feed.AgencyRef))
	if err := os.WriteFile(path, feedJSON, 0o644); err != nil {
		return err
	}

	log.Info().Str("path", path).Msg("Wrote feed")

	return nil
}
