package start

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/tonshowcase/showcase/internal/container"
	"github.com/tonshowcase/showcase/internal/utils"
	"github.com/tonshowcase/showcase/pkg/parser"
)

func Handler(c *container.AppContainer) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		text, button := parser.GetMessage("start", map[string]string{
			"firstName": utils.EscapeHTML(update.CallbackQuery.From.FirstName),
			"webAppUrl": c.Config.WebAppURL,
		})

		_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      update.CallbackQuery.Message.Message.Chat.ID,
			Text:        text,
			ReplyMarkup: button,
			ParseMode:   models.ParseModeHTML,
			MessageID:   update.CallbackQuery.Message.Message.ID,
		})
		if err != nil {
			c.Log.WithError(err).Error("failed to edit start message")
		}
	}
}
