package start

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/tonshowcase/showcase/internal/container"
	"github.com/tonshowcase/showcase/internal/utils"
	"github.com/tonshowcase/showcase/pkg/parser"
)

// Handler greets the user with a button that opens the Mini App.
func Handler(c *container.AppContainer) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil || update.Message.From == nil {
			return
		}

		text, button := parser.GetMessage("start", map[string]string{
			"firstName": utils.EscapeHTML(update.Message.From.FirstName),
			"webAppUrl": c.Config.WebAppURL,
		})

		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      update.Message.Chat.ID,
			Text:        text,
			ReplyMarkup: button,
			ParseMode:   models.ParseModeHTML,
			ReplyParameters: &models.ReplyParameters{
				MessageID: update.Message.ID,
			},
		})
		if err != nil {
			c.Log.WithError(err).WithField("chat_id", update.Message.Chat.ID).Error("failed to send start message")
		}
	}
}
