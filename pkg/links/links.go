package links

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/filebeam/filebeam/internal/domain"
)

const (
	KeyPlaceholder         = "{file_key}"
	BotUsernamePlaceholder = "{bot_username}"
	MessageIDPlaceholder   = "{message_id}"

	keyBytes   = 16
	tokenBytes = 32
)

// Generator derives access URLs by template substitution. It holds no state
// and performs no reachability checks on the URLs it produces.
type Generator struct {
	streamTemplate   string
	downloadTemplate string
	platformTemplate string
}

type GeneratorConfig struct {
	StreamTemplate   string
	DownloadTemplate string
	PlatformTemplate string
}

func NewGenerator(cfg GeneratorConfig) (*Generator, error) {
	for name, template := range map[string]string{
		"stream":   cfg.StreamTemplate,
		"download": cfg.DownloadTemplate,
	} {
		if strings.Count(template, KeyPlaceholder) != 1 {
			return nil, fmt.Errorf("%s link template must contain exactly one %s placeholder, got %q", name, KeyPlaceholder, template)
		}
	}

	if !strings.Contains(cfg.PlatformTemplate, BotUsernamePlaceholder) || !strings.Contains(cfg.PlatformTemplate, MessageIDPlaceholder) {
		return nil, fmt.Errorf("platform link template must contain %s and %s placeholders, got %q", BotUsernamePlaceholder, MessageIDPlaceholder, cfg.PlatformTemplate)
	}

	return &Generator{
		streamTemplate:   cfg.StreamTemplate,
		downloadTemplate: cfg.DownloadTemplate,
		platformTemplate: cfg.PlatformTemplate,
	}, nil
}

func (g *Generator) Stream(fileKey string) string {
	return strings.Replace(g.streamTemplate, KeyPlaceholder, fileKey, 1)
}

func (g *Generator) Download(fileKey string) string {
	return strings.Replace(g.downloadTemplate, KeyPlaceholder, fileKey, 1)
}

func (g *Generator) Platform(botUsername string, messageID int) string {
	link := strings.Replace(g.platformTemplate, BotUsernamePlaceholder, botUsername, 1)
	return strings.Replace(link, MessageIDPlaceholder, strconv.Itoa(messageID), 1)
}

// Bundle derives all three access links for an archived file.
func (g *Generator) Bundle(fileKey string, botUsername string, messageID int) domain.LinkBundle {
	return domain.LinkBundle{
		StreamLink:   g.Stream(fileKey),
		DownloadLink: g.Download(fileKey),
		PlatformLink: g.Platform(botUsername, messageID),
	}
}

// NewKey generates a file key: 22 URL-safe characters from a CSPRNG.
// Collisions are negligible at any realistic upload volume.
func NewKey() (string, error) {
	buf := make([]byte, keyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// AccessToken generates a URL-safe secret token for access-control use.
// Tokens are independent of any file key.
func AccessToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
