package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"tooldeals/internal/domain/entity"
)

// TelegramBot mirrors glitch alerts into a Telegram channel.
type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (b *TelegramBot) SendGlitch(ctx context.Context, deal entity.Deal) error {
	text := fmt.Sprintf(
		"🔥 <b>GLITCH FOUND!</b>\n\n"+
			"🛠 <b>%s</b>\n"+
			"💰 <b>Price:</b> $%.2f\n"+
			"🏷 <b>Was:</b> $%.2f\n"+
			"🏪 <b>Store:</b> %s\n\n"+
			"🔗 <a href=\"%s\">Buy Now</a>",
		deal.Title,
		deal.Price,
		deal.OriginalPrice,
		deal.Store,
		deal.URL,
	)

	msg := tu.Message(
		tu.ID(b.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText отправляет простое текстовое сообщение.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	_, err := b.bot.SendMessage(ctx, msg)
	return err
}
