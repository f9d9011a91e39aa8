package repositories

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gatewayOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "estatesync",
			Subsystem: "gateway",
			Name:      "operations_total",
			Help:      "Remote collection operations by outcome.",
		},
		[]string{"op", "collection", "result"},
	)

	gatewayDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "estatesync",
			Subsystem: "gateway",
			Name:      "operation_duration_seconds",
			Help:      "Remote collection operation latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op", "collection"},
	)
)

// InstrumentedGateway records metrics around another Gateway. Errors pass
// through unchanged.
type InstrumentedGateway struct {
	next Gateway
}

func NewInstrumentedGateway(next Gateway) *InstrumentedGateway {
	return &InstrumentedGateway{next: next}
}

func (g *InstrumentedGateway) List(ctx context.Context, collection string) ([]Document, error) {
	defer observe("list", collection, time.Now())
	docs, err := g.next.List(ctx, collection)
	count("list", collection, err)
	return docs, err
}

func (g *InstrumentedGateway) Query(ctx context.Context, collection, field string, value any) ([]Document, error) {
	defer observe("query", collection, time.Now())
	docs, err := g.next.Query(ctx, collection, field, value)
	count("query", collection, err)
	return docs, err
}

func (g *InstrumentedGateway) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	defer observe("insert", collection, time.Now())
	id, err := g.next.Insert(ctx, collection, doc)
	count("insert", collection, err)
	return id, err
}

func (g *InstrumentedGateway) Update(ctx context.Context, collection, id string, patch Document) error {
	defer observe("update", collection, time.Now())
	err := g.next.Update(ctx, collection, id, patch)
	count("update", collection, err)
	return err
}

func (g *InstrumentedGateway) Delete(ctx context.Context, collection, id string) error {
	defer observe("delete", collection, time.Now())
	err := g.next.Delete(ctx, collection, id)
	count("delete", collection, err)
	return err
}

func observe(op, collection string, start time.Time) {
	gatewayDuration.WithLabelValues(op, collection).Observe(time.Since(start).Seconds())
}

func count(op, collection string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	gatewayOperations.WithLabelValues(op, collection, result).Inc()
}
