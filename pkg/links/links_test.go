package links

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()

	generator, err := NewGenerator(GeneratorConfig{
		StreamTemplate:   "https://stream.example.com/{file_key}",
		DownloadTemplate: "https://download.example.com/dl/{file_key}",
		PlatformTemplate: "https://t.me/{bot_username}/{message_id}",
	})
	require.NoError(t, err)

	return generator
}

func TestNewGenerator_TemplateValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  GeneratorConfig
		wantErr bool
	}{
		{
			name: "valid templates",
			config: GeneratorConfig{
				StreamTemplate:   "https://s.example.com/{file_key}",
				DownloadTemplate: "https://d.example.com/{file_key}",
				PlatformTemplate: "https://t.me/{bot_username}/{message_id}",
			},
			wantErr: false,
		},
		{
			name: "stream template missing placeholder",
			config: GeneratorConfig{
				StreamTemplate:   "https://s.example.com/files",
				DownloadTemplate: "https://d.example.com/{file_key}",
				PlatformTemplate: "https://t.me/{bot_username}/{message_id}",
			},
			wantErr: true,
		},
		{
			name: "download template with duplicate placeholder",
			config: GeneratorConfig{
				StreamTemplate:   "https://s.example.com/{file_key}",
				DownloadTemplate: "https://d.example.com/{file_key}/{file_key}",
				PlatformTemplate: "https://t.me/{bot_username}/{message_id}",
			},
			wantErr: true,
		},
		{
			name: "platform template missing message id",
			config: GeneratorConfig{
				StreamTemplate:   "https://s.example.com/{file_key}",
				DownloadTemplate: "https://d.example.com/{file_key}",
				PlatformTemplate: "https://t.me/{bot_username}",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenerator_Bundle(t *testing.T) {
	generator := newTestGenerator(t)

	bundle := generator.Bundle("abc123", "filebeam_bot", 42)

	assert.Equal(t, "https://stream.example.com/abc123", bundle.StreamLink)
	assert.Equal(t, "https://download.example.com/dl/abc123", bundle.DownloadLink)
	assert.Equal(t, "https://t.me/filebeam_bot/42", bundle.PlatformLink)
}

func TestGenerator_TemplateRoundTrip(t *testing.T) {
	generator := newTestGenerator(t)

	key, err := NewKey()
	require.NoError(t, err)

	url := generator.Stream(key)

	// Extract the key back out of the URL using the placeholder position.
	template := "https://stream.example.com/{file_key}"
	prefix, suffix, found := strings.Cut(template, KeyPlaceholder)
	require.True(t, found)

	extracted := strings.TrimPrefix(url, prefix)
	extracted = strings.TrimSuffix(extracted, suffix)
	assert.Equal(t, key, extracted)
}

func TestNewKey_Properties(t *testing.T) {
	key, err := NewKey()
	require.NoError(t, err)

	assert.Len(t, key, 22)

	const urlSafe = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	for _, r := range key {
		assert.Contains(t, urlSafe, string(r))
	}
}

func TestNewKey_Uniqueness(t *testing.T) {
	const n = 20000

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		key, err := NewKey()
		require.NoError(t, err)

		_, dup := seen[key]
		require.False(t, dup, "duplicate key after %d generations: %s", i, key)
		seen[key] = struct{}{}
	}
}

func TestAccessToken(t *testing.T) {
	first, err := AccessToken()
	require.NoError(t, err)
	second, err := AccessToken()
	require.NoError(t, err)

	assert.Len(t, first, 43)
	assert.NotEqual(t, first, second)
}
