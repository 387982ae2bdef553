package telegram

import (
	"context"
	"fmt"

	"github.com/filebeam/filebeam/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Client wraps the Telegram Bot API as the bot's transport: it consumes
// updates, sends replies and forwards uploads into the storage channel.
type Client struct {
	bot              *tgbotapi.BotAPI
	storageChannelID int64
}

type ClientConfig struct {
	BotToken         string
	StorageChannelID int64
	Debug            bool
}

func NewClient(cfg ClientConfig) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot client: %w", err)
	}

	bot.Debug = cfg.Debug

	return &Client{
		bot:              bot,
		storageChannelID: cfg.StorageChannelID,
	}, nil
}

func (c *Client) BotUsername() string {
	return c.bot.Self.UserName
}

func (c *Client) SendReply(ctx context.Context, reply domain.Reply) error {
	msg := tgbotapi.NewMessage(reply.ChatID, reply.Text)
	msg.DisableWebPagePreview = true

	if len(reply.Buttons) > 0 {
		msg.ReplyMarkup = keyboardMarkup(reply.Buttons)
	}

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

func (c *Client) AnswerCallback(ctx context.Context, callbackID string, text string) error {
	if _, err := c.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		return fmt.Errorf("failed to answer callback: %w", err)
	}

	return nil
}

// Archive forwards the uploaded message into the storage channel and
// returns the forwarded message id, which serves as the durable locator.
func (c *Client) Archive(ctx context.Context, event domain.Event) (int, error) {
	forward := tgbotapi.NewForward(c.storageChannelID, event.ChatID, event.MessageID)

	stored, err := c.bot.Send(forward)
	if err != nil {
		return 0, fmt.Errorf("failed to forward message to storage channel: %w", err)
	}

	return stored.MessageID, nil
}

// Run consumes updates until ctx is cancelled, converting each update to a
// domain event and handing it to dispatch. Every event is dispatched on its
// own goroutine; same-user ordering is not enforced.
func (c *Client) Run(ctx context.Context, dispatch func(ctx context.Context, event domain.Event)) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := c.bot.GetUpdatesChan(updateConfig)

	log.Info().Str("bot_username", c.BotUsername()).Msg("Consuming Telegram updates")

	for {
		select {
		case <-ctx.Done():
			c.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			event, ok := eventFromUpdate(update)
			if !ok {
				continue
			}

			go dispatch(ctx, event)
		}
	}
}

// eventFromUpdate classifies an update as command, media, text or callback.
// Group chats and messages from other bots are ignored.
func eventFromUpdate(update tgbotapi.Update) (domain.Event, bool) {
	if callback := update.CallbackQuery; callback != nil {
		if callback.Message == nil {
			return domain.Event{}, false
		}

		return domain.Event{
			Type:          domain.EventTypeCallback,
			SenderID:      callback.From.ID,
			ChatID:        callback.Message.Chat.ID,
			MessageID:     callback.Message.MessageID,
			CallbackID:    callback.ID,
			CallbackToken: callback.Data,
		}, true
	}

	message := update.Message
	if message == nil || message.From == nil || message.From.IsBot || !message.Chat.IsPrivate() {
		return domain.Event{}, false
	}

	event := domain.Event{
		SenderID:  message.From.ID,
		ChatID:    message.Chat.ID,
		MessageID: message.MessageID,
	}

	if media := mediaPayload(message); media != nil {
		event.Type = domain.EventTypeMedia
		event.Media = media
		return event, true
	}

	if message.IsCommand() {
		event.Type = domain.EventTypeCommand
		event.Command = message.Command()
		event.CommandArgs = message.CommandArguments()
		return event, true
	}

	if message.Text != "" {
		event.Type = domain.EventTypeText
		event.Text = message.Text
		return event, true
	}

	return domain.Event{}, false
}

func mediaPayload(message *tgbotapi.Message) *domain.MediaPayload {
	switch {
	case message.Document != nil:
		name := message.Document.FileName
		if name == "" {
			name = "document"
		}
		return &domain.MediaPayload{
			SourceRef:   message.Document.FileID,
			DisplayName: name,
			SizeBytes:   int64(message.Document.FileSize),
		}
	case message.Video != nil:
		name := message.Video.FileName
		if name == "" {
			name = "video_" + shortUniqueID(message.Video.FileUniqueID)
		}
		return &domain.MediaPayload{
			SourceRef:   message.Video.FileID,
			DisplayName: name,
			SizeBytes:   int64(message.Video.FileSize),
		}
	case message.Audio != nil:
		name := message.Audio.FileName
		if name == "" {
			name = "audio_" + shortUniqueID(message.Audio.FileUniqueID)
		}
		return &domain.MediaPayload{
			SourceRef:   message.Audio.FileID,
			DisplayName: name,
			SizeBytes:   int64(message.Audio.FileSize),
		}
	}

	return nil
}

func shortUniqueID(uniqueID string) string {
	if len(uniqueID) > 8 {
		return uniqueID[:8]
	}
	return uniqueID
}

func keyboardMarkup(buttons [][]domain.Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, row := range buttons {
		keyboardRow := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Label, button.Token))
		}
		rows = append(rows, keyboardRow)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
