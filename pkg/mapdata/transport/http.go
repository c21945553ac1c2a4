package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	kittransport "github.com/go-kit/kit/transport"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"

	"github.com/ColinToft/LoopRoute/internal/util/errors"
	"github.com/ColinToft/LoopRoute/pkg/mapdata/endpoints"
)

func NewHTTPHandler(ep endpoints.Set) http.Handler {
	r := mux.NewRouter()

	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(encodeError),
		httptransport.ServerErrorHandler(kittransport.NewLogErrorHandler(level.Warn(logger))),
	}

	r.Methods(http.MethodGet).Path("/api/mapdata").Handler(httptransport.NewServer(
		ep.GetMapDataEndpoint,
		decodeMapDataRequest,
		httptransport.EncodeJSONResponse,
		options...,
	))

	return r
}

func decodeMapDataRequest(_ context.Context, r *http.Request) (interface{}, error) {
	// Decode the query parameters into a struct
	var req endpoints.MapDataRequest
	var err error
	query := r.URL.Query()
	req.Lat, err = strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		return nil, errors.ErrInvalidArgument
	}
	req.Lon, err = strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		return nil, errors.ErrInvalidArgument
	}
	req.Radius, err = strconv.ParseFloat(query.Get("radius"), 64)
	if err != nil {
		return nil, errors.ErrInvalidArgument
	}

	return req, nil
}

func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	switch errors.Cause(err) {
	case errors.ErrInvalidArgument:
		w.WriteHeader(http.StatusBadRequest)
	default:
		w.WriteHeader(http.StatusBadGateway)
	}
	message := "map data unavailable"
	if errors.IsUserFacing(err) {
		message = errors.Cause(err).Error()
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": message,
	})
}

var logger log.Logger

func init() {
	logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "transport", "HTTP")
}
