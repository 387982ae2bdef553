package telegram

import (
	"testing"

	"github.com/filebeam/filebeam/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func privateMessage(userID int64) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 7,
		From:      &tgbotapi.User{ID: userID},
		Chat:      &tgbotapi.Chat{ID: userID, Type: "private"},
	}
}

func TestEventFromUpdate_Command(t *testing.T) {
	message := privateMessage(1)
	message.Text = "/delete k1"
	message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 7}}

	event, ok := eventFromUpdate(tgbotapi.Update{Message: message})
	require.True(t, ok)

	assert.Equal(t, domain.EventTypeCommand, event.Type)
	assert.Equal(t, "delete", event.Command)
	assert.Equal(t, "k1", event.CommandArgs)
	assert.Equal(t, int64(1), event.SenderID)
}

func TestEventFromUpdate_Text(t *testing.T) {
	message := privateMessage(2)
	message.Text = "secret1"

	event, ok := eventFromUpdate(tgbotapi.Update{Message: message})
	require.True(t, ok)

	assert.Equal(t, domain.EventTypeText, event.Type)
	assert.Equal(t, "secret1", event.Text)
}

func TestEventFromUpdate_Media(t *testing.T) {
	tests := []struct {
		name         string
		decorate     func(message *tgbotapi.Message)
		expectedName string
		expectedRef  string
	}{
		{
			name: "document with name",
			decorate: func(message *tgbotapi.Message) {
				message.Document = &tgbotapi.Document{FileID: "doc-1", FileName: "report.pdf", FileSize: 2048576}
			},
			expectedName: "report.pdf",
			expectedRef:  "doc-1",
		},
		{
			name: "document without name",
			decorate: func(message *tgbotapi.Message) {
				message.Document = &tgbotapi.Document{FileID: "doc-2"}
			},
			expectedName: "document",
			expectedRef:  "doc-2",
		},
		{
			name: "video without name",
			decorate: func(message *tgbotapi.Message) {
				message.Video = &tgbotapi.Video{FileID: "vid-1", FileUniqueID: "abcdefgh1234"}
			},
			expectedName: "video_abcdefgh",
			expectedRef:  "vid-1",
		},
		{
			name: "audio without name",
			decorate: func(message *tgbotapi.Message) {
				message.Audio = &tgbotapi.Audio{FileID: "aud-1", FileUniqueID: "xyz"}
			},
			expectedName: "audio_xyz",
			expectedRef:  "aud-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message := privateMessage(3)
			tt.decorate(message)

			event, ok := eventFromUpdate(tgbotapi.Update{Message: message})
			require.True(t, ok)

			assert.Equal(t, domain.EventTypeMedia, event.Type)
			require.NotNil(t, event.Media)
			assert.Equal(t, tt.expectedName, event.Media.DisplayName)
			assert.Equal(t, tt.expectedRef, event.Media.SourceRef)
		})
	}
}

func TestEventFromUpdate_Callback(t *testing.T) {
	update := tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb-9",
			From:    &tgbotapi.User{ID: 4},
			Data:    "choice_yes",
			Message: privateMessage(4),
		},
	}

	event, ok := eventFromUpdate(update)
	require.True(t, ok)

	assert.Equal(t, domain.EventTypeCallback, event.Type)
	assert.Equal(t, "cb-9", event.CallbackID)
	assert.Equal(t, "choice_yes", event.CallbackToken)
	assert.Equal(t, int64(4), event.SenderID)
	assert.Equal(t, 7, event.MessageID)
}

func TestEventFromUpdate_Ignored(t *testing.T) {
	groupMessage := privateMessage(5)
	groupMessage.Chat.Type = "group"
	groupMessage.Text = "hello"

	botMessage := privateMessage(6)
	botMessage.From.IsBot = true
	botMessage.Text = "hello"

	tests := []struct {
		name   string
		update tgbotapi.Update
	}{
		{name: "empty update", update: tgbotapi.Update{}},
		{name: "group chat", update: tgbotapi.Update{Message: groupMessage}},
		{name: "bot sender", update: tgbotapi.Update{Message: botMessage}},
		{name: "no classifiable payload", update: tgbotapi.Update{Message: privateMessage(7)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := eventFromUpdate(tt.update)
			assert.False(t, ok)
		})
	}
}

func TestKeyboardMarkup(t *testing.T) {
	markup := keyboardMarkup([][]domain.Button{
		{
			{Label: "No password", Token: "choice_no"},
			{Label: "Yes, set a password", Token: "choice_yes"},
		},
	})

	require.Len(t, markup.InlineKeyboard, 1)
	require.Len(t, markup.InlineKeyboard[0], 2)
	assert.Equal(t, "No password", markup.InlineKeyboard[0][0].Text)
	require.NotNil(t, markup.InlineKeyboard[0][1].CallbackData)
	assert.Equal(t, "choice_yes", *markup.InlineKeyboard[0][1].CallbackData)
}
