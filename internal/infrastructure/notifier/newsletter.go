package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/resend/resend-go/v2"

	"tooldeals/internal/domain/entity"
	"tooldeals/internal/domain/value"
	"tooldeals/internal/infrastructure/persistence"
	"tooldeals/pkg/logx"
)

const newsletterTopN = 3

type dealLister interface {
	List(ctx context.Context, filter persistence.ListFilter) ([]entity.Deal, error)
}

// Newsletter builds and sends the weekly digest: the active glitches plus the
// deepest discounts.
type Newsletter struct {
	client      *resend.Client
	deals       dealLister
	subscribers subscriberLister
	from        string
	siteURL     string
}

func NewNewsletter(apiKey, from, siteURL string, deals dealLister, subscribers subscriberLister) *Newsletter {
	return &Newsletter{
		client:      resend.NewClient(apiKey),
		deals:       deals,
		subscribers: subscribers,
		from:        from,
		siteURL:     siteURL,
	}
}

func (n *Newsletter) Send(ctx context.Context) error {
	emails, err := n.subscribers.ListEmails(ctx)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}
	if len(emails) == 0 {
		logger(ctx).Info("no subscribers, skipping newsletter")
		return nil
	}

	glitches, topSales, err := n.bestDeals(ctx)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("🔥 Weekly Glitch Report: %d Active Errors Found", len(glitches))
	html := newsletterHTML(glitches, topSales, n.siteURL)

	sent := 0
	for _, email := range emails {
		_, err := n.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
			From:    n.from,
			To:      []string{email},
			Subject: subject,
			Html:    html,
		})
		if err != nil {
			logger(ctx).Error("failed to send newsletter", logx.Error(err))
			continue
		}
		sent++
	}

	logger(ctx).Info(
		"newsletter sent",
		slog.Int("subscribers", len(emails)),
		slog.Int("delivered", sent),
	)

	return nil
}

func (n *Newsletter) bestDeals(ctx context.Context) (glitches, topSales []entity.Deal, err error) {
	glitches, err = n.deals.List(ctx, persistence.ListFilter{
		DealType: value.DealTypeGlitch,
		Statuses: []value.Status{value.StatusActive},
		Limit:    newsletterTopN,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("list glitches: %w", err)
	}

	active, err := n.deals.List(ctx, persistence.ListFilter{
		Statuses: []value.Status{value.StatusActive},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("list active deals: %w", err)
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].DiscountPct() > active[j].DiscountPct()
	})
	if len(active) > newsletterTopN {
		active = active[:newsletterTopN]
	}

	return glitches, active, nil
}
