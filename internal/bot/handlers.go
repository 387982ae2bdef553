package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/filebeam/filebeam/internal/domain"
	"github.com/filebeam/filebeam/pkg/links"

	"github.com/rs/zerolog/log"
)

const (
	TokenChoiceNo  = "choice_no"
	TokenChoiceYes = "choice_yes"
)

type Handlers struct {
	files     domain.FileStore
	states    domain.StateStore
	links     *links.Generator
	messenger domain.Messenger
	archiver  domain.Archiver
	adminID   int64
	botName   string
}

type HandlersDependencies struct {
	FileStore     domain.FileStore
	StateStore    domain.StateStore
	LinkGenerator *links.Generator
	Messenger     domain.Messenger
	Archiver      domain.Archiver
	AdminID       int64
	BotName       string
}

func NewHandlers(deps HandlersDependencies) *Handlers {
	return &Handlers{
		files:     deps.FileStore,
		states:    deps.StateStore,
		links:     deps.LinkGenerator,
		messenger: deps.Messenger,
		archiver:  deps.Archiver,
		adminID:   deps.AdminID,
		botName:   deps.BotName,
	}
}

// Routes returns the dispatch table in precedence order: commands first,
// then media, then the exact callback tokens, then password text gated on
// phase, and the unconditional fallback last.
func (h *Handlers) Routes() []Route {
	return []Route{
		{Name: "start", Match: isCommand("start"), Handle: h.Start},
		{Name: "help", Match: isCommand("help"), Handle: h.Help},
		{Name: "myfiles", Match: isCommand("myfiles"), Handle: h.MyFiles},
		{Name: "delete", Match: isCommand("delete"), Handle: h.DeleteFile},
		{Name: "file_upload", Match: isMedia, Handle: h.FileUpload},
		{Name: "password_choice", Match: isCallbackToken(TokenChoiceNo, TokenChoiceYes), Handle: h.PasswordChoice},
		{Name: "password_input", Match: h.isPasswordInput, Handle: h.PasswordInput},
		{Name: "fallback", Match: matchAny, Handle: h.Fallback},
	}
}

func isCommand(name string) Predicate {
	return func(event domain.Event) bool {
		return event.Type == domain.EventTypeCommand && event.Command == name
	}
}

func isMedia(event domain.Event) bool {
	return event.Type == domain.EventTypeMedia && event.Media != nil
}

func isCallbackToken(tokens ...string) Predicate {
	return func(event domain.Event) bool {
		if event.Type != domain.EventTypeCallback {
			return false
		}
		for _, token := range tokens {
			if event.CallbackToken == token {
				return true
			}
		}
		return false
	}
}

// isPasswordInput gates the generic text handler on the conversation phase.
// The gate lives in the predicate so a non-matching text event falls through
// to the fallback route instead of being swallowed here.
func (h *Handlers) isPasswordInput(event domain.Event) bool {
	if event.Type != domain.EventTypeText {
		return false
	}
	return h.states.Get(event.SenderID).Phase == domain.PhaseAwaitingPassword
}

func matchAny(domain.Event) bool {
	return true
}

// Start resets the conversation and sends the introduction. Any stale
// pending key from an abandoned flow is discarded.
func (h *Handlers) Start(ctx context.Context, event domain.Event) error {
	h.states.Reset(event.SenderID)

	log.Ctx(ctx).Info().Msg("User started bot")

	return h.messenger.SendReply(ctx, domain.Reply{
		ChatID: event.ChatID,
		Text:   welcomeText(h.botName),
	})
}

func (h *Handlers) Help(ctx context.Context, event domain.Event) error {
	return h.messenger.SendReply(ctx, domain.Reply{
		ChatID: event.ChatID,
		Text:   welcomeText(h.botName),
	})
}

func (h *Handlers) MyFiles(ctx context.Context, event domain.Event) error {
	records, err := h.files.ListByOwner(event.SenderID)
	if err != nil {
		return fmt.Errorf("failed to list files for user %d: %w", event.SenderID, err)
	}

	return h.messenger.SendReply(ctx, domain.Reply{
		ChatID: event.ChatID,
		Text:   formatFileList(records),
	})
}

// DeleteFile removes a record from the metadata store. Restricted to the
// configured administrator.
func (h *Handlers) DeleteFile(ctx context.Context, event domain.Event) error {
	if event.SenderID != h.adminID {
		return h.messenger.SendReply(ctx, domain.Reply{
			ChatID: event.ChatID,
			Text:   replyAdminOnly,
		})
	}

	key := strings.TrimSpace(event.CommandArgs)
	if key == "" {
		return h.messenger.SendReply(ctx, domain.Reply{
			ChatID: event.ChatID,
			Text:   replyDeleteUsage,
		})
	}

	if err := h.files.Delete(key); err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			return h.messenger.SendReply(ctx, domain.Reply{
				ChatID: event.ChatID,
				Text:   fmt.Sprintf("No file found for key %s.", key),
			})
		}
		return fmt.Errorf("failed to delete file %s: %w", key, err)
	}

	log.Ctx(ctx).Info().Str("file_key", key).Msg("File deleted by admin")

	return h.messenger.SendReply(ctx, domain.Reply{
		ChatID: event.ChatID,
		Text:   fmt.Sprintf("Deleted file %s.", key),
	})
}

// FileUpload archives the payload, persists its metadata under a fresh key
// and moves the conversation to AwaitingChoice. A failed archive leaves no
// record and no state change, so re-sending the file retries cleanly.
func (h *Handlers) FileUpload(ctx context.Context, event domain.Event) error {
	logger := log.Ctx(ctx)
	media := *event.Media

	storageMessageID, err := h.archiver.Archive(ctx, event)
	if err != nil {
		logger.Error().Err(err).Str("file_name", media.DisplayName).Msg("Failed to archive upload")

		return h.messenger.SendReply(ctx, domain.Reply{
			ChatID: event.ChatID,
			Text:   replyArchiveFailed,
		})
	}

	key, err := links.NewKey()
	if err != nil {
		return fmt.Errorf("failed to generate file key: %w", err)
	}

	record := domain.FileRecord{
		Key:              key,
		SourceRef:        media.SourceRef,
		DisplayName:      media.DisplayName,
		SizeBytes:        media.SizeBytes,
		OwnerID:          event.SenderID,
		StorageMessageID: storageMessageID,
		CreatedAt:        time.Now().UTC(),
	}

	if err := h.files.Put(record); err != nil {
		return fmt.Errorf("failed to persist file record %s: %w", key, err)
	}

	// A new upload unconditionally replaces any in-flight flow for the user.
	h.states.Update(event.SenderID, func(state *domain.ConversationState) {
		state.Phase = domain.PhaseAwaitingChoice
		state.PendingFileKey = key
	})

	logger.Info().
		Str("file_key", key).
		Str("file_name", media.DisplayName).
		Int64("size_bytes", media.SizeBytes).
		Msg("File archived")

	return h.messenger.SendReply(ctx, domain.Reply{
		ChatID:  event.ChatID,
		Text:    formatUploadReceived(record),
		Buttons: passwordChoiceKeyboard(),
	})
}

// PasswordChoice handles the two inline keyboard branches. A press that
// arrives when the user is no longer choosing is stale: it gets a neutral
// acknowledgement and mutates nothing.
func (h *Handlers) PasswordChoice(ctx context.Context, event domain.Event) error {
	state := h.states.Get(event.SenderID)

	if state.Phase != domain.PhaseAwaitingChoice || state.PendingFileKey == "" {
		return h.messenger.AnswerCallback(ctx, event.CallbackID, replyStaleChoice)
	}

	switch event.CallbackToken {
	case TokenChoiceNo:
		if err := h.deliverLinks(ctx, event); err != nil {
			return err
		}
		return h.messenger.AnswerCallback(ctx, event.CallbackID, replyLinksReady)

	case TokenChoiceYes:
		h.states.Update(event.SenderID, func(state *domain.ConversationState) {
			state.Phase = domain.PhaseAwaitingPassword
		})

		log.Ctx(ctx).Info().Str("file_key", state.PendingFileKey).Msg("User chose password protection")

		if err := h.messenger.SendReply(ctx, domain.Reply{
			ChatID: event.ChatID,
			Text:   replyAskPassword,
		}); err != nil {
			return err
		}
		return h.messenger.AnswerCallback(ctx, event.CallbackID, "")
	}

	return nil
}

// PasswordInput stores the supplied text as the pending file's password and
// completes the flow. The phase gate lives in isPasswordInput.
func (h *Handlers) PasswordInput(ctx context.Context, event domain.Event) error {
	password := strings.TrimSpace(event.Text)
	if password == "" {
		return h.messenger.SendReply(ctx, domain.Reply{
			ChatID: event.ChatID,
			Text:   replyEmptyPassword,
		})
	}

	state := h.states.Get(event.SenderID)

	if err := h.files.SetPassword(state.PendingFileKey, password); err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			return h.reportMissingPendingFile(ctx, event, state.PendingFileKey)
		}
		return fmt.Errorf("failed to set password for %s: %w", state.PendingFileKey, err)
	}

	log.Ctx(ctx).Info().Str("file_key", state.PendingFileKey).Msg("Password set for file")

	return h.deliverLinks(ctx, event)
}

func (h *Handlers) Fallback(ctx context.Context, event domain.Event) error {
	if event.Type == domain.EventTypeCallback {
		return h.messenger.AnswerCallback(ctx, event.CallbackID, replyStaleChoice)
	}

	return h.messenger.SendReply(ctx, domain.Reply{
		ChatID: event.ChatID,
		Text:   replyFallback,
	})
}

// deliverLinks is the single exit routine for both completion branches. It
// resolves the pending record, derives the link bundle and resets the
// conversation to Idle after a successful send.
func (h *Handlers) deliverLinks(ctx context.Context, event domain.Event) error {
	state := h.states.Get(event.SenderID)

	record, err := h.files.Get(state.PendingFileKey)
	if err != nil {
		return h.reportMissingPendingFile(ctx, event, state.PendingFileKey)
	}

	bundle := h.links.Bundle(record.Key, h.messenger.BotUsername(), record.StorageMessageID)

	if err := h.messenger.SendReply(ctx, domain.Reply{
		ChatID: event.ChatID,
		Text:   formatLinksReply(record, bundle),
	}); err != nil {
		return fmt.Errorf("failed to send link bundle for %s: %w", record.Key, err)
	}

	h.states.Reset(event.SenderID)

	log.Ctx(ctx).Info().Str("file_key", record.Key).Msg("Links delivered")

	return nil
}

// reportMissingPendingFile handles the invariant violation of a pending key
// with no backing record: log it, reset the flow and tell the user something
// generic rather than crash.
func (h *Handlers) reportMissingPendingFile(ctx context.Context, event domain.Event, key string) error {
	log.Ctx(ctx).Error().Str("file_key", key).Msg("Pending file key missing from metadata store")

	h.states.Reset(event.SenderID)

	return h.messenger.SendReply(ctx, domain.Reply{
		ChatID: event.ChatID,
		Text:   replyGenericFailure,
	})
}
