package bot

import (
	"context"

	"github.com/filebeam/filebeam/internal/domain"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
)

type Predicate func(event domain.Event) bool

type HandlerFunc func(ctx context.Context, event domain.Event) error

// Route pairs a predicate with the handler that consumes matching events.
type Route struct {
	Name   string
	Match  Predicate
	Handle HandlerFunc
}

// Dispatcher routes each inbound event to exactly one handler. Routes are
// fixed at construction and evaluated in registration order; the first
// predicate that holds consumes the event and no later route sees it.
type Dispatcher struct {
	routes []Route
}

func NewDispatcher(routes ...Route) *Dispatcher {
	return &Dispatcher{
		routes: routes,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, event domain.Event) {
	logger := log.With().
		Str("event_id", xid.New().String()).
		Str("event_type", string(event.Type)).
		Int64("user_id", event.SenderID).
		Logger()

	ctx = logger.WithContext(ctx)

	for _, route := range d.routes {
		if !route.Match(event) {
			continue
		}

		if err := route.Handle(ctx, event); err != nil {
			logger.Error().Err(err).Str("route", route.Name).Msg("Handler failed")
		}

		return
	}

	// The fallback route matches unconditionally, so an unrouted event means
	// the route list was assembled without it.
	logger.Warn().Msg("No route matched event")
}
