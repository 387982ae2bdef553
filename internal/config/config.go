package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds everything the bot needs at startup. Missing required
// fields are a fatal configuration error; the process never starts
// consuming updates with a partial config.
type Config struct {
	BotToken         string
	StorageChannelID int64
	AdminID          int64
	BotName          string

	StreamLinkTemplate   string
	DownloadLinkTemplate string
	PlatformLinkTemplate string

	DataDir string
	Debug   bool
}

// Load reads configuration from an optional filebeam_config.yaml and the
// environment, with environment variables taking precedence.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envMappings := map[string]string{
		"BotToken":             "BOT_TOKEN",
		"StorageChannelID":     "STORAGE_CHANNEL_ID",
		"AdminID":              "ADMIN_ID",
		"BotName":              "BOT_NAME",
		"StreamLinkTemplate":   "STREAM_LINK_TEMPLATE",
		"DownloadLinkTemplate": "DOWNLOAD_LINK_TEMPLATE",
		"PlatformLinkTemplate": "PLATFORM_LINK_TEMPLATE",
		"DataDir":              "DATA_DIR",
		"Debug":                "DEBUG",
	}

	for configKey, envVar := range envMappings {
		if err := v.BindEnv(configKey, envVar); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", envVar, configKey)
		}
	}

	v.SetConfigName("filebeam_config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.filebeam")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Info().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("BotName", "File to Link Bot")
	v.SetDefault("StreamLinkTemplate", "https://stream.example.com/{file_key}")
	v.SetDefault("DownloadLinkTemplate", "https://download.example.com/{file_key}")
	v.SetDefault("PlatformLinkTemplate", "https://t.me/{bot_username}/{message_id}")
	v.SetDefault("DataDir", "data")
	v.SetDefault("Debug", false)
}

func (c *Config) validate() error {
	var missing []string

	if c.BotToken == "" {
		missing = append(missing, "BOT_TOKEN")
	}
	if c.StorageChannelID == 0 {
		missing = append(missing, "STORAGE_CHANNEL_ID")
	}
	if c.AdminID == 0 {
		missing = append(missing, "ADMIN_ID")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return nil
}
