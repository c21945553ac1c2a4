package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/pkg/errors"

	"github.com/ColinToft/LoopRoute/internal/util/mapdata"
	svc "github.com/ColinToft/LoopRoute/pkg/mapdata"
	"github.com/ColinToft/LoopRoute/pkg/mapdata/endpoints"
)

// NewHTTPClient returns a map data service backed by a remote map data server.
// The remote server decides which Overpass instance to query.
func NewHTTPClient(baseURL string, client *http.Client) (svc.Service, error) {
	if !strings.HasPrefix(baseURL, "http") {
		baseURL = "http://" + baseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid map data URL")
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/mapdata"

	options := []httptransport.ClientOption{}
	if client != nil {
		options = append(options, httptransport.SetClient(client))
	}

	return &httpClient{
		getMapData: httptransport.NewClient(
			http.MethodGet,
			u,
			encodeMapDataRequest,
			decodeMapDataResponse,
			options...,
		).Endpoint(),
	}, nil
}

type httpClient struct {
	getMapData endpoint.Endpoint
}

func (c *httpClient) GetMapData(ctx context.Context, lat, lon, radius float64, _ svc.Options) (mapdata.MapData, error) {
	response, err := c.getMapData(ctx, endpoints.MapDataRequest{Lat: lat, Lon: lon, Radius: radius})
	if err != nil {
		return mapdata.MapData{}, err
	}
	return response.(mapdata.MapData), nil
}

func encodeMapDataRequest(_ context.Context, r *http.Request, request interface{}) error {
	req := request.(endpoints.MapDataRequest)
	q := r.URL.Query()
	q.Set("lat", fmt.Sprintf("%f", req.Lat))
	q.Set("lon", fmt.Sprintf("%f", req.Lon))
	q.Set("radius", fmt.Sprintf("%f", req.Radius))
	r.URL.RawQuery = q.Encode()
	return nil
}

func decodeMapDataResponse(_ context.Context, r *http.Response) (interface{}, error) {
	if r.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		return nil, errors.Errorf("map data service returned status %d: %s", r.StatusCode, body.Error)
	}

	var data mapdata.MapData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		return nil, errors.Wrap(err, "failed to decode map data")
	}
	return data, nil
}
