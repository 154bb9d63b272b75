package profileinfo

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/tonshowcase/showcase/internal/container"
	"github.com/tonshowcase/showcase/internal/database/repositories"
	"github.com/tonshowcase/showcase/internal/utils"
	"github.com/tonshowcase/showcase/pkg/parser"
)

func Handler(c *container.AppContainer) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		userID := update.CallbackQuery.From.ID
		chatID := update.CallbackQuery.Message.Message.Chat.ID
		messageID := update.CallbackQuery.Message.Message.ID

		user, err := c.UserRepo.GetUserById(ctx, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				b.EditMessageText(ctx, &bot.EditMessageTextParams{
					ChatID:    chatID,
					MessageID: messageID,
					Text:      "❌ User not found. Send /start first.",
				})
				return
			}
			c.Log.WithError(err).WithField("telegram_id", userID).Error("failed to load user")
			return
		}

		countShowcases, err := c.ShowcaseRepo.CountByOwner(ctx, userID)
		if err != nil {
			c.Log.WithError(err).WithField("telegram_id", userID).Error("failed to count showcases")
			return
		}

		data := map[string]string{
			"firstName": utils.EscapeHTML(user.FirstName),
			"userId":    fmt.Sprintf("%d", user.TelegramID),
			"wallet":    utils.OrDefault(user.WalletAddress, "not connected"),
			"showcases": fmt.Sprintf("%d", countShowcases),
		}

		text, button := parser.GetMessage("profile", data)

		_, err = b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      chatID,
			Text:        text,
			ReplyMarkup: button,
			ParseMode:   models.ParseModeHTML,
			MessageID:   messageID,
		})
		if err != nil {
			c.Log.WithError(err).Error("failed to edit profile message")
		}
	}
}
