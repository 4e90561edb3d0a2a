package config

type Notifier struct {
	ResendAPIKey string `env:"RESEND_API_KEY" json:"-"`
	FromAddress  string `env:"MAIL_FROM" envDefault:"Tool Deals <updates@tooldealsdaily.com>"`
	SiteURL      string `env:"SITE_URL" envDefault:"https://tooldealsdaily.com"`

	YouTubeChannelID string `env:"YOUTUBE_CHANNEL_ID"`

	// Optional mirror of glitch alerts to a Telegram channel.
	TelegramToken  string `env:"TG_BOT_TOKEN" json:"-"`
	TelegramChatID int64  `env:"TG_CHAT_ID"`
}

func (n Notifier) EmailEnabled() bool {
	return n.ResendAPIKey != ""
}

func (n Notifier) TelegramEnabled() bool {
	return n.TelegramToken != "" && n.TelegramChatID != 0
}
