package commands

import (
	"github.com/go-telegram/bot"
	"github.com/tonshowcase/showcase/internal/container"
	"github.com/tonshowcase/showcase/internal/telegram/commands/help"
	"github.com/tonshowcase/showcase/internal/telegram/commands/start"
)

func LoadCommandHandlers(b *bot.Bot, c *container.AppContainer) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, start.Handler(c))
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, help.Handler(c))
}
