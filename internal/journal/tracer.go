package journal

import (
	"context"

	"github.com/Mouthless-Stoat/Leshy/fight"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/Mouthless-Stoat/Leshy/fight"

// Tracer opens a span per dispatch pass. A pass started inside another pass
// becomes a child of the outer pass span.
type Tracer struct {
	tracer trace.Tracer
	root   context.Context
	open   []openSpan
}

type openSpan struct {
	ctx  context.Context
	span trace.Span
}

var _ fight.Observer = (*Tracer)(nil)

// NewTracer creates a tracer whose outermost spans are children of ctx. A nil
// tracer uses the global provider.
func NewTracer(ctx context.Context, tracer trace.Tracer) *Tracer {
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	return &Tracer{tracer: tracer, root: ctx}
}

func (t *Tracer) parent() context.Context {
	if n := len(t.open); n > 0 {
		return t.open[n-1].ctx
	}
	return t.root
}

func passAttributes(p fight.Pass) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("fight.event", p.Event.String()),
		attribute.Int("fight.depth", p.Depth),
		attribute.String("fight.active", p.Active.String()),
		attribute.Bool("fight.causing", p.Causing),
	}
	return attrs
}

// PassStarted implements fight.Observer.
func (t *Tracer) PassStarted(p fight.Pass) {
	ctx, span := t.tracer.Start(t.parent(), "fight.pass", trace.WithAttributes(passAttributes(p)...))
	t.open = append(t.open, openSpan{ctx: ctx, span: span})
}

// PassFinished implements fight.Observer.
func (t *Tracer) PassFinished(p fight.Pass) {
	n := len(t.open)
	if n == 0 {
		return
	}
	top := t.open[n-1]
	t.open = t.open[:n-1]
	top.span.SetAttributes(attribute.Int("fight.activations", p.Activations))
	top.span.End()
}

// PassSkipped implements fight.Observer.
func (t *Tracer) PassSkipped(p fight.Pass) {
	_, span := t.tracer.Start(t.parent(), "fight.pass", trace.WithAttributes(passAttributes(p)...))
	span.SetAttributes(attribute.Bool("fight.skipped", true))
	span.SetStatus(codes.Error, "pass depth limit reached")
	span.End()
}
