package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	kittransport "github.com/go-kit/kit/transport"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"

	"github.com/ColinToft/LoopRoute/internal/util/errors"
	"github.com/ColinToft/LoopRoute/pkg/routegen"
	"github.com/ColinToft/LoopRoute/pkg/routegen/endpoints"
)

const requestIDHeader = "X-Request-ID"

func NewHTTPHandler(ep endpoints.Set) http.Handler {
	r := mux.NewRouter()

	options := []httptransport.ServerOption{
		httptransport.ServerBefore(requestIDFromHeader),
		httptransport.ServerAfter(allowAnyOrigin),
		httptransport.ServerErrorEncoder(encodeError),
		httptransport.ServerErrorHandler(kittransport.NewLogErrorHandler(level.Error(logger))),
	}

	r.Methods(http.MethodPost).Path("/route").Handler(httptransport.NewServer(
		ep.GenerateRouteEndpoint,
		decodeGenerateRouteRequest,
		encodeResponse,
		options...,
	))

	r.Methods(http.MethodGet).Path("/api/status").Handler(httptransport.NewServer(
		ep.StatusEndpoint,
		decodeStatusRequest,
		encodeResponse,
		options...,
	))

	return r
}

func requestIDFromHeader(ctx context.Context, r *http.Request) context.Context {
	if id := r.Header.Get(requestIDHeader); id != "" {
		return routegen.ContextWithRequestID(ctx, id)
	}
	return ctx
}

func allowAnyOrigin(ctx context.Context, w http.ResponseWriter) context.Context {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	return ctx
}

func decodeGenerateRouteRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req endpoints.GenerateRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.ErrInvalidArgument
	}
	return req, nil
}

func decodeStatusRequest(_ context.Context, _ *http.Request) (interface{}, error) {
	return endpoints.StatusRequest{}, nil
}

func encodeResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if route, ok := response.(routegen.Route); ok && route.RequestID != "" {
		w.Header().Set(requestIDHeader, route.RequestID)
	}
	return httptransport.EncodeJSONResponse(ctx, w, response)
}

// encodeError writes the sentinel's text for errors the caller can act on and
// a generic message for everything else. The full error is logged by the error handler.
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	switch errors.Cause(err) {
	case errors.ErrInvalidArgument:
		w.WriteHeader(http.StatusBadRequest)
	case errors.ErrNoNetwork:
		w.WriteHeader(http.StatusNotFound)
	case errors.ErrTimeout:
		w.WriteHeader(http.StatusGatewayTimeout)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
	message := "internal error"
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
