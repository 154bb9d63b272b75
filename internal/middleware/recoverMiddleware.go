package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/sirupsen/logrus"
)

// RecoverMiddleware keeps one panicking handler from taking the bot down.
func RecoverMiddleware(log logrus.FieldLogger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			defer func() {
				if r := recover(); r != nil {
					log.WithField("update_id", update.ID).Errorf("panic in bot handler: %v", r)
				}
			}()

			next(ctx, b, update)
		}
	}
}
