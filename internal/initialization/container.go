package initialization

import (
	"fmt"

	"github.com/filebeam/filebeam/internal/bot"
	"github.com/filebeam/filebeam/internal/config"
	"github.com/filebeam/filebeam/internal/managers"
	"github.com/filebeam/filebeam/pkg/clients/telegram"
	"github.com/filebeam/filebeam/pkg/links"

	"github.com/rs/zerolog/log"
)

// BotContainer wires the stores, the link generator and the Telegram
// transport into a ready-to-run dispatcher.
type BotContainer struct {
	client     *telegram.Client
	dispatcher *bot.Dispatcher
}

func NewBotContainer(cfg *config.Config) (*BotContainer, error) {
	log.Info().Msg("Building bot dependencies")

	fileStore, err := managers.NewFileStore(managers.FileStoreDependencies{
		DataDir: cfg.DataDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create file store: %w", err)
	}

	stateStore := managers.NewStateStore()

	linkGenerator, err := links.NewGenerator(links.GeneratorConfig{
		StreamTemplate:   cfg.StreamLinkTemplate,
		DownloadTemplate: cfg.DownloadLinkTemplate,
		PlatformTemplate: cfg.PlatformLinkTemplate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create link generator: %w", err)
	}

	client, err := telegram.NewClient(telegram.ClientConfig{
		BotToken:         cfg.BotToken,
		StorageChannelID: cfg.StorageChannelID,
		Debug:            cfg.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram client: %w", err)
	}

	handlers := bot.NewHandlers(bot.HandlersDependencies{
		FileStore:     fileStore,
		StateStore:    stateStore,
		LinkGenerator: linkGenerator,
		Messenger:     client,
		Archiver:      client,
		AdminID:       cfg.AdminID,
		BotName:       cfg.BotName,
	})

	return &BotContainer{
		client:     client,
		dispatcher: bot.NewDispatcher(handlers.Routes()...),
	}, nil
}

func (c *BotContainer) GetClient() *telegram.Client {
	return c.client
}

func (c *BotContainer) GetDispatcher() *bot.Dispatcher {
	return c.dispatcher
}
