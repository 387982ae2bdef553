package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/filebeam/filebeam/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_FirstMatchConsumes(t *testing.T) {
	var handled []string

	record := func(name string) HandlerFunc {
		return func(ctx context.Context, event domain.Event) error {
			handled = append(handled, name)
			return nil
		}
	}

	match := func(ok bool) Predicate {
		return func(domain.Event) bool { return ok }
	}

	dispatcher := NewDispatcher(
		Route{Name: "first", Match: match(false), Handle: record("first")},
		Route{Name: "second", Match: match(true), Handle: record("second")},
		Route{Name: "third", Match: match(true), Handle: record("third")},
	)

	dispatcher.Dispatch(context.Background(), domain.Event{Type: domain.EventTypeText, SenderID: 1})

	assert.Equal(t, []string{"second"}, handled)
}

func TestDispatcher_HandlerErrorDoesNotPropagate(t *testing.T) {
	dispatcher := NewDispatcher(Route{
		Name:   "failing",
		Match:  func(domain.Event) bool { return true },
		Handle: func(ctx context.Context, event domain.Event) error { return errors.New("boom") },
	})

	// Errors are logged, not raised; dispatch must not panic.
	dispatcher.Dispatch(context.Background(), domain.Event{Type: domain.EventTypeText, SenderID: 1})
}

func TestDispatcher_UnknownCommandFallsThrough(t *testing.T) {
	b := newTestBot(t)

	b.dispatcher.Dispatch(context.Background(), commandEvent(1, "frobnicate", ""))

	assert.Equal(t, replyFallback, b.messenger.lastReply(t).Text)
}

func TestDispatcher_UnknownCallbackTokenFallsThrough(t *testing.T) {
	b := newTestBot(t)

	b.dispatcher.Dispatch(context.Background(), callbackEvent(1, "bogus_token"))

	// The fallback answers the callback neutrally instead of sending a reply.
	assert.Zero(t, b.messenger.replyCount())
	assert.Len(t, b.messenger.callbacks, 1)
}
