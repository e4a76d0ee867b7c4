package tg

import (
	"context"
	"strings"

	gobot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Bot отдаёт кнопку запуска Mini App — именно так Telegram доставляет
// initData на страницу.
type Bot struct {
	token  string
	appURL string
}

func NewBot(token, appURL string) *Bot { return &Bot{token: token, appURL: appURL} }

func (b *Bot) Run(ctx context.Context) error {
	if b.token == "" {
		log.Warn().Msg("TG token empty: bot disabled")
		return nil
	}
	bot, err := gobot.NewBotAPI(b.token)
	if err != nil {
		return err
	}
	bot.Debug = false
	log.Info().Str("@", bot.Self.UserName).Msg("Telegram connected")

	u := gobot.NewUpdate(0)
	u.Timeout = 30

	updates := bot.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return nil
		case up := <-updates:
			if up.Message == nil {
				continue
			}
			chatID := up.Message.Chat.ID
			text := strings.TrimSpace(up.Message.Text)
			switch {
			case strings.HasPrefix(text, "/start"):
				b.sendLaunch(bot, chatID)
			case strings.HasPrefix(text, "/ping"):
				b.reply(bot, chatID, "pong")
			default:
				b.reply(bot, chatID, "Команды: /start — открыть приложение, /ping")
			}
		}
	}
}

func (b *Bot) sendLaunch(bot *gobot.BotAPI, chatID int64) {
	if b.appURL == "" {
		b.reply(bot, chatID, "WEBAPP_URL не задан")
		return
	}
	msg := gobot.NewMessage(chatID, "Открой мини-приложение:")
	btn := gobot.InlineKeyboardButton{
		Text:   "Открыть",
		WebApp: &gobot.WebAppInfo{URL: b.appURL},
	}
	msg.ReplyMarkup = gobot.NewInlineKeyboardMarkup(gobot.NewInlineKeyboardRow(btn))
	if _, err := bot.Send(msg); err != nil {
		log.Error().Err(err).Msg("send launch button")
	}
}

func (b *Bot) reply(bot *gobot.BotAPI, chatID int64, text string) {
	msg := gobot.NewMessage(chatID, text)
	if _, err := bot.Send(msg); err != nil {
		log.Error().Err(err).Msg("send tg msg")
	}
}
