package routegen

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColinToft/LoopRoute/internal/util/errors"
)

type fixedService struct {
	route Route
	err   error
}

func (s fixedService) GenerateRoute(context.Context, Request) (Route, error) {
	return s.route, s.err
}

func (s fixedService) Status(context.Context) (Status, error) {
	return Status{GeneratedRoutes: 3}, nil
}

type recordedCounter struct {
	lvs   [][]string
	total *float64
}

func (c recordedCounter) With(labelValues ...string) metrics.Counter {
	c.lvs = append(c.lvs, labelValues)
	return c
}

func (c recordedCounter) Add(delta float64) { *c.total += delta }

type recordedHistogram struct {
	values *[]float64
}

func (h recordedHistogram) With(...string) metrics.Histogram { return h }

func (h recordedHistogram) Observe(value float64) { *h.values = append(*h.values, value) }

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	svc := LoggingMiddleware(log.NewLogfmtLogger(&buf))(fixedService{route: Route{Length: 1234, Fallback: true}})

	ctx := ContextWithRequestID(context.Background(), "abc")
	_, err := svc.GenerateRoute(ctx, Request{Lat: 43.5, Lon: -79.5, Distance: 1200})
	require.NoError(t, err)

	line := buf.String()
	assert.Contains(t, line, "method=GenerateRoute")
	assert.Contains(t, line, "request_id=abc")
	assert.Contains(t, line, "distance=1200")
	assert.Contains(t, line, "length=1234")
	assert.Contains(t, line, "fallback=true")

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), status.GeneratedRoutes)
}

func TestInstrumentingMiddleware(t *testing.T) {
	var (
		total      float64
		latencies  []float64
		deviations []float64
	)
	mw := InstrumentingMiddleware(
		recordedCounter{total: &total},
		recordedHistogram{values: &latencies},
		recordedHistogram{values: &deviations},
	)

	ok := mw(fixedService{route: Route{Stats: Stats{Deviation: 25}}})
	_, err := ok.GenerateRoute(context.Background(), Request{})
	require.NoError(t, err)

	failing := mw(fixedService{err: errors.ErrNoNetwork})
	_, err = failing.GenerateRoute(context.Background(), Request{})
	require.Error(t, err)

	assert.Equal(t, 2.0, total)
	assert.Len(t, latencies, 2)
	assert.Equal(t, []float64{25}, deviations)
}

func TestRequestIDs(t *testing.T) {
	assert.Empty(t, RequestIDFrom(context.Background()))
	assert.Equal(t, "given", RequestIDFrom(ContextWithRequestID(context.Background(), "given")))

	a := RequestIDFrom(ContextWithRequestID(context.Background(), ""))
	b := RequestIDFrom(ContextWithRequestID(context.Background(), ""))
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
