package dataimporter

import (
	"context"
	"fmt"
	"strings"

	"github.com/travigo/normaliser/pkg/ctdf"
	"github.com/travigo/normaliser/pkg/util"
)

// Sink receives a complete normalised feed. Sinks are only called once the
// whole feed has been normalised without a fatal error.
type Sink interface {
	Name() string
	Write(ctx context.Context, feed *ctdf.Feed) error
}

const (
	OutputMongo      = "mongo"
	OutputJSON       = "json"
	OutputRouteCache = "routecache"
	OutputElastic    = "elastic"
)

var knownOutputs = map[string]bool{
	OutputMongo:      true,
	OutputJSON:       true,
	OutputRouteCache: true,
	OutputElastic:    true,
}

// ParseOutputs reads a comma separated list of output names
func ParseOutputs(list string) ([]string, error) {
	var outputs []string
	for _, output := range strings.Split(list, ",") {
		outputs = append(outputs, strings.ToLower(strings.TrimSpace(output)))
	}

	outputs = util.Deduplicate(outputs)

	for _, output := range outputs {
		if !knownOutputs[output] {
			return nil, fmt.Errorf("unknown output %q", output)
		}
	}

	return outputs, nil
}
