package mapdata

// Map data service implementation

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ColinToft/LoopRoute/internal/util/mapdata"
)

type overpassService struct {
	client *http.Client
	logger log.Logger
}

func NewService(client *http.Client, logger log.Logger) Service {
	if client == nil {
		client = &http.Client{Timeout: 90 * time.Second}
	}
	return &overpassService{client: client, logger: logger}
}

func (s *overpassService) GetMapData(ctx context.Context, lat, lon, radius float64, opts Options) (mapdata.MapData, error) {
	var (
		data     mapdata.MapData
		features = make([][]mapdata.Feature, len(featureQueries))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		o, err := s.query(gctx, opts.OverpassURL, wayQuery(lat, lon, radius))
		if err != nil {
			return errors.Wrap(err, "street query")
		}
		data.Nodes, data.Ways = streetsFromOSM(o)
		return nil
	})

	for i, q := range featureQueries {
		i, q := i, q
		g.Go(func() error {
			o, err := s.query(gctx, opts.OverpassURL, q.query(lat, lon, radius))
			if err != nil {
				// Routes can be built without features
				level.Warn(s.logger).Log("method", "GetMapData", "features", q.kind, "err", err)
				return nil
			}
			features[i] = q.featuresFromOSM(o)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return mapdata.MapData{}, err
	}

	for _, f := range features {
		data.Features = append(data.Features, f...)
	}

	level.Debug(s.logger).Log("method", "GetMapData", "nodes", len(data.Nodes), "ways", len(data.Ways), "features", len(data.Features))
	return data, nil
}

func (s *overpassService) query(ctx context.Context, apiURL, query string) (*osm.OSM, error) {
	form := url.Values{}
	form.Set("data", query)

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create overpass request")
	}
	r.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(r)
	if err != nil {
		return nil, errors.Wrap(err, "overpass request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("overpass returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read overpass response")
	}

	o := &osm.OSM{}
	if err := xml.Unmarshal(body, o); err != nil {
		return nil, errors.Wrap(err, "failed to decode overpass response")
	}
	return o, nil
}
