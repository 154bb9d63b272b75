package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	tgbotModels "github.com/go-telegram/bot/models"
	"github.com/sirupsen/logrus"
	"github.com/tonshowcase/showcase/internal/database/models"
	"github.com/tonshowcase/showcase/internal/database/repositories"
)

// SaveUserMiddleware upserts whoever sent the update, so users that talk to the
// bot before opening the Mini App are searchable.
func SaveUserMiddleware(userRepo *repositories.UserRepository, log logrus.FieldLogger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *tgbotModels.Update) {
			if from := sender(update); from != nil && !from.IsBot {
				user := &models.User{
					TelegramID: from.ID,
					FirstName:  from.FirstName,
					Username:   from.Username,
				}

				if err := userRepo.UpsertUser(ctx, user); err != nil {
					log.WithError(err).WithField("telegram_id", from.ID).Error("❌ failed to upsert user")
				}
			}

			next(ctx, b, update)
		}
	}
}

func sender(update *tgbotModels.Update) *tgbotModels.User {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From
	case update.CallbackQuery != nil:
		return &update.CallbackQuery.From
	case update.InlineQuery != nil && update.InlineQuery.From != nil:
		return update.InlineQuery.From
	}
	return nil
}
