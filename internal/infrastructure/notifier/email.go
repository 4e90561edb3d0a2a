package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"

	"tooldeals/internal/domain/entity"
	"tooldeals/pkg/logx"
)

type subscriberLister interface {
	ListEmails(ctx context.Context) ([]string, error)
}

// EmailNotifier sends glitch alerts to every subscriber through Resend.
type EmailNotifier struct {
	client      *resend.Client
	subscribers subscriberLister
	from        string
	siteURL     string
}

func NewEmailNotifier(apiKey, from, siteURL string, subscribers subscriberLister) *EmailNotifier {
	return &EmailNotifier{
		client:      resend.NewClient(apiKey),
		subscribers: subscribers,
		from:        from,
		siteURL:     siteURL,
	}
}

// SendGlitch delivers one alert per subscriber, best effort. A bounced
// address only costs that address its alert.
func (n *EmailNotifier) SendGlitch(ctx context.Context, deal entity.Deal) error {
	emails, err := n.subscribers.ListEmails(ctx)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}

	subject := fmt.Sprintf("🔥 GLITCH: %s for $%.2f", deal.Title, deal.Price)
	html := glitchAlertHTML(deal, n.siteURL)

	for _, email := range emails {
		_, err := n.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
			From:    n.from,
			To:      []string{email},
			Subject: subject,
			Html:    html,
		})
		if err != nil {
			logger(ctx).Error(
				"failed to send glitch alert",
				slog.String(logx.FieldDealID, deal.ID),
				logx.Error(err),
			)
		}
	}

	return nil
}
