package bot

import (
	"fmt"

	"github.com/shrimpsizemoose/pluggbulle/internal/app"
)

// ReadConfig loads the shared service config and checks the bot section.
func ReadConfig(path string) (*app.Config, error) {
	cfg, err := app.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if cfg.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is not set in config or PLUGGBULLE_BOT_TOKEN")
	}
	if cfg.Auth.RedisURL == "" {
		return nil, fmt.Errorf("bot needs auth.redis_url to keep tokens and chat links")
	}
	return cfg, nil
}
