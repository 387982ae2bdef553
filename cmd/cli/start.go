package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/filebeam/filebeam/internal/config"
	"github.com/filebeam/filebeam/internal/initialization"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewStartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the bot",
		Long:  `Start consuming Telegram updates. Requires BOT_TOKEN, STORAGE_CHANNEL_ID and ADMIN_ID to be configured.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart()
		},
	}

	return cmd
}

func runStart() error {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	container, err := initialization.NewBotContainer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build bot dependencies")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info().Str("bot_name", cfg.BotName).Msg("Starting bot")

	client := container.GetClient()
	dispatcher := container.GetDispatcher()

	if err := client.Run(ctx, dispatcher.Dispatch); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info().Msg("Bot stopped")
	return nil
}
