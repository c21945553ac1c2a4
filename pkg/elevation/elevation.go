package elevation

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Options are set per lookup, so concurrent requests can use different sources.
type Options struct {
	// URLTemplate is an OpenTopoData compatible URL with a {locations} placeholder
	URLTemplate string
	BatchSize   int
	Pause       time.Duration
}

type Sample struct {
	Point     orb.Point
	Elevation float64
}

// Service looks up ground elevation in meters.
type Service interface {
	// Lookup returns one elevation per point, NaN where the source has no data.
	Lookup(ctx context.Context, points []orb.Point, opts Options) ([]float64, error)
}

type openTopoDataService struct {
	client *http.Client
	cache  *Cache // optional
	logger log.Logger
}

type openTopoDataResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Results []struct {
		Elevation *float64 `json:"elevation"`
		Location  struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"results"`
}

// NewService creates an elevation service backed by an OpenTopoData API.
// cache may be nil.
func NewService(client *http.Client, cache *Cache, logger log.Logger) Service {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &openTopoDataService{client: client, cache: cache, logger: logger}
}

func (s *openTopoDataService) Lookup(ctx context.Context, points []orb.Point, opts Options) ([]float64, error) {
	elevations := make([]float64, len(points))
	missing := make([]int, 0, len(points))

	for i, p := range points {
		elevations[i] = math.NaN()
		if s.cache == nil {
			missing = append(missing, i)
			continue
		}
		elevation, ok, err := s.cache.Get(ctx, p)
		if err != nil {
			return nil, err
		}
		if ok {
			elevations[i] = elevation
		} else {
			missing = append(missing, i)
		}
	}

	level.Debug(s.logger).Log("method", "Lookup", "points", len(points), "cached", len(points)-len(missing))

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	for start := 0; start < len(missing); start += batchSize {
		if start > 0 && opts.Pause > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(opts.Pause):
			}
		}

		end := start + batchSize
		if end > len(missing) {
			end = len(missing)
		}
		batch := missing[start:end]

		batchPoints := make([]orb.Point, len(batch))
		for j, i := range batch {
			batchPoints[j] = points[i]
		}

		values, err := s.fetch(ctx, batchPoints, opts.URLTemplate)
		if err != nil {
			return nil, err
		}

		samples := make([]Sample, 0, len(batch))
		for j, i := range batch {
			elevations[i] = values[j]
			if !math.IsNaN(values[j]) {
				samples = append(samples, Sample{Point: points[i], Elevation: values[j]})
			}
		}

		if s.cache != nil {
			if err := s.cache.SetBatch(ctx, samples); err != nil {
				level.Warn(s.logger).Log("method", "Lookup", "during", "SetBatch", "err", err)
			}
		}
	}

	return elevations, nil
}

// Locations in the lat,lon|lat,lon form OpenTopoData expects
func formatLocations(points []orb.Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%.6f,%.6f", p.Lat(), p.Lon())
	}
	return strings.Join(parts, "|")
}

func (s *openTopoDataService) fetch(ctx context.Context, points []orb.Point, urlTemplate string) ([]float64, error) {
	url := strings.Replace(urlTemplate, "{locations}", formatLocations(points), 1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create elevation request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "elevation request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("elevation service returned status %d", resp.StatusCode)
	}

	var body openTopoDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "failed to decode elevation response")
	}
	if body.Status != "OK" {
		return nil, errors.Errorf("elevation service status %q: %s", body.Status, body.Error)
	}
	if len(body.Results) != len(points) {
		return nil, errors.Errorf("elevation service returned %d results for %d locations", len(body.Results), len(points))
	}

	elevations := make([]float64, len(points))
	for i, r := range body.Results {
		if r.Elevation == nil {
			elevations[i] = math.NaN()
			continue
		}
		elevations[i] = *r.Elevation
	}
	return elevations, nil
}
