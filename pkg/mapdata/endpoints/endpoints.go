package endpoints

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/ColinToft/LoopRoute/internal/util/errors"
	"github.com/ColinToft/LoopRoute/pkg/mapdata"
)

type Set struct {
	GetMapDataEndpoint endpoint.Endpoint
}

// NewEndpointSet serves map data with the given options for every request.
func NewEndpointSet(svc mapdata.Service, opts mapdata.Options) Set {
	return Set{
		GetMapDataEndpoint: MakeGetMapDataEndpoint(svc, opts),
	}
}

func MakeGetMapDataEndpoint(svc mapdata.Service, opts mapdata.Options) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(MapDataRequest)
		if err := req.validate(); err != nil {
			return nil, err
		}
		data, err := svc.GetMapData(ctx, req.Lat, req.Lon, req.Radius, opts)
		if err != nil {
			return nil, err
		}
		return data, nil
	}
}

func (r MapDataRequest) validate() error {
	if r.Lat < -90 || r.Lat > 90 || r.Lon < -180 || r.Lon > 180 || r.Radius <= 0 {
		return errors.ErrInvalidArgument
	}
	return nil
}
