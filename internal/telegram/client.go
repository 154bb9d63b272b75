package telegram

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/tonshowcase/showcase/internal/container"
	"github.com/tonshowcase/showcase/internal/middleware"
	"github.com/tonshowcase/showcase/internal/telegram/callbacks"
	"github.com/tonshowcase/showcase/internal/telegram/commands"
)

// CreateBot builds the bot with every handler registered. Extra options are
// appended after the defaults.
func CreateBot(app *container.AppContainer, extra ...bot.Option) (*bot.Bot, error) {
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.RecoverMiddleware(app.Log),
			middleware.SaveUserMiddleware(app.UserRepo, app.Log),
		),
	}
	opts = append(opts, extra...)

	b, err := bot.New(app.Config.TelegramBotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	commands.LoadCommandHandlers(b, app)
	callbacks.LoadCallbacksHandlers(b, app)

	return b, nil
}

// StartBot long-polls until ctx is done. It does nothing without a bot token.
func StartBot(ctx context.Context, app *container.AppContainer) error {
	if app.Config.TelegramBotToken == "" {
		app.Log.Warn("⚠️ TELEGRAM_BOT_TOKEN not set, bot disabled")
		return nil
	}

	b, err := CreateBot(app)
	if err != nil {
		return err
	}

	if err := CleanupWebhook(ctx, app, b); err != nil {
		return err
	}

	if me, err := b.GetMe(ctx); err == nil {
		app.Log.Infof("🤖 bot started as @%s", me.Username)
	}

	b.Start(ctx)
	app.Log.Info("🔻 bot stopped")
	return nil
}

// CleanupWebhook removes any webhook left behind so long polling can receive
// updates.
func CleanupWebhook(ctx context.Context, app *container.AppContainer, b *bot.Bot) error {
	if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{}); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}
	app.Log.Debug("webhook removed")
	return nil
}
