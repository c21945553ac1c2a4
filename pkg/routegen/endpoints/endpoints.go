package endpoints

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/ColinToft/LoopRoute/internal/util/errors"
	"github.com/ColinToft/LoopRoute/pkg/routegen"
)

type Set struct {
	GenerateRouteEndpoint endpoint.Endpoint
	StatusEndpoint        endpoint.Endpoint
}

func NewEndpointSet(svc routegen.Service) Set {
	return Set{
		GenerateRouteEndpoint: MakeGenerateRouteEndpoint(svc),
		StatusEndpoint:        MakeStatusEndpoint(svc),
	}
}

// MakeGenerateRouteEndpoint serves one loop per request. Requests without an
// id get a fresh one.
func MakeGenerateRouteEndpoint(svc routegen.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(GenerateRouteRequest)
		r, err := req.toRequest()
		if err != nil {
			return nil, err
		}

		if routegen.RequestIDFrom(ctx) == "" {
			ctx = routegen.ContextWithRequestID(ctx, "")
		}
		route, err := svc.GenerateRoute(ctx, r)
		if err != nil {
			return nil, err
		}
		return route, nil
	}
}

func MakeStatusEndpoint(svc routegen.Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		status, err := svc.Status(ctx)
		if err != nil {
			return nil, err
		}
		return status, nil
	}
}

func (r GenerateRouteRequest) toRequest() (routegen.Request, error) {
	if len(r.Coords) != 2 {
		return routegen.Request{}, errors.ErrInvalidArgument
	}
	req := routegen.Request{
		Lat:       r.Coords[0],
		Lon:       r.Coords[1],
		Distance:  r.Distance,
		Elevation: r.Elevation,
		Surface:   r.Surface,
		Nature:    r.Nature,
		Lighting:  r.Lighting,
		POI:       r.POI,
	}
	if err := req.Validate(); err != nil {
		return routegen.Request{}, err
	}
	return req, nil
}
