package telegram

import (
	"RestoPos/pkg/logging"
	"html"
	"sync"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/pkg/errors"
)

// maxMessage is the Telegram limit on a message text, in characters.
const maxMessage = 4096

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

var (
	mu     sync.Mutex
	bot    sender
	chatID int64
)

// Start connects the bot. With an empty token or chat every send is a no-op.
func Start(token string, chat int64, debug bool) error {
	logger := logging.GetLogger()
	logger.Debug("telegram.Start:>Start")
	defer logger.Debug("telegram.Start:>End")

	if token == "" || chat == 0 {
		logger.Info("telegram disabled, no bot token or chat id")
		return nil
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return errors.Wrap(err, "failed tgbotapi.NewBotAPI")
	}
	api.Debug = debug
	logger.Infof("telegram bot @%s ready", api.Self.UserName)
	use(api, chat)
	return nil
}

func use(s sender, chat int64) {
	mu.Lock()
	defer mu.Unlock()
	bot = s
	chatID = chat
}

func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return bot != nil
}

// SendMessage sends text to the configured chat, split when it is too long.
func SendMessage(text string) error {
	mu.Lock()
	b, chat := bot, chatID
	mu.Unlock()
	if b == nil {
		return nil
	}
	for _, part := range split(text, maxMessage) {
		if _, err := b.Send(tgbotapi.NewMessage(chat, part)); err != nil {
			return errors.Wrap(err, "failed bot.Send")
		}
	}
	return nil
}

// SendTicket sends a text ticket in monospace so its columns line up.
func SendTicket(text string) error {
	mu.Lock()
	b, chat := bot, chatID
	mu.Unlock()
	if b == nil {
		return nil
	}
	// room for the <pre></pre> wrapper and escaping
	for _, part := range split(text, maxMessage/2) {
		msg := tgbotapi.NewMessage(chat, "<pre>"+html.EscapeString(part)+"</pre>")
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := b.Send(msg); err != nil {
			return errors.Wrap(err, "failed bot.Send")
		}
	}
	return nil
}

func SendMessageToTelegramWithLogError(text string) {
	if err := SendMessage(text); err != nil {
		logger := logging.GetLogger()
		logger.Errorf("failed telegram.SendMessage(), error: %v", err)
	}
}

// split cuts s into chunks of at most n runes, at line breaks when it can.
func split(s string, n int) []string {
	var parts []string
	for utf8.RuneCountInString(s) > n {
		runes := []rune(s)
		cut := n
		for i := n - 1; i > n/2; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		parts = append(parts, string(runes[:cut]))
		s = string(runes[cut:])
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
