package metrics

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/vikask011/react-native/pkg/logger"
	"github.com/vikask011/react-native/pkg/telemetry"
)

// Booking holds the business counters of the booking flow
type Booking struct {
	OrdersCreated     *telemetry.Counter
	GatewayFailures   *telemetry.Counter
	BookingsConfirmed *telemetry.Counter
	SoldOut           *telemetry.Counter
	SignatureFailures *telemetry.Counter
	BookingsExpired   *telemetry.Counter
	OutboxPublished   *telemetry.Counter
	OutboxFailed      *telemetry.Counter
	GatewayLatency    *telemetry.Histogram
}

var (
	booking     *Booking
	bookingOnce sync.Once
)

// Get registers the instruments on first use. An instrument that fails to
// register stays nil and records nothing.
func Get() *Booking {
	bookingOnce.Do(func() {
		booking = &Booking{
			OrdersCreated:     counter("booking.orders.created", "Gateway orders opened"),
			GatewayFailures:   counter("booking.gateway.failures", "Gateway order creation failures"),
			BookingsConfirmed: counter("booking.confirmed", "Bookings confirmed"),
			SoldOut:           counter("booking.sold_out", "Requests rejected because no seat was left"),
			SignatureFailures: counter("booking.signature.failures", "Payment signatures that did not verify"),
			BookingsExpired:   counter("booking.expired", "Pending bookings cancelled by the expiry worker"),
			OutboxPublished:   counter("booking.outbox.published", "Outbox messages published"),
			OutboxFailed:      counter("booking.outbox.failed", "Outbox publish failures"),
			GatewayLatency:    histogram("booking.gateway.latency", "Gateway order creation latency", "ms"),
		}
	})
	return booking
}

func counter(name, description string) *telemetry.Counter {
	c, err := telemetry.NewCounter(telemetry.MetricOpts{Name: name, Description: description, Unit: "1"})
	if err != nil {
		logger.Get().Warn("failed to register counter", zap.String("name", name), zap.Error(err))
		return nil
	}
	return c
}

func histogram(name, description, unit string) *telemetry.Histogram {
	h, err := telemetry.NewHistogram(telemetry.MetricOpts{Name: name, Description: description, Unit: unit})
	if err != nil {
		logger.Get().Warn("failed to register histogram", zap.String("name", name), zap.Error(err))
		return nil
	}
	return h
}

// Gateway tags an observation with the gateway name
func Gateway(name string) attribute.KeyValue {
	return attribute.String("gateway", name)
}

// Record is a shorthand for counting one occurrence
func Record(ctx context.Context, c *telemetry.Counter, attrs ...attribute.KeyValue) {
	c.Inc(ctx, attrs...)
}
