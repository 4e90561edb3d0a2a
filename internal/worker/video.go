package worker

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/go-resty/resty/v2"

	"tooldeals/internal/domain"
	"tooldeals/internal/domain/entity"
	"tooldeals/pkg/errcodes"
)

var (
	videoIDPattern    = regexp.MustCompile(`<yt:videoId>(.*?)</yt:videoId>`)
	videoTitlePattern = regexp.MustCompile(`<media:title>(.*?)</media:title>`)
)

type settingsStore interface {
	UpsertFeaturedVideo(ctx context.Context, video entity.FeaturedVideo) error
}

// VideoRefresher keeps the site's featured video pointed at the channel's
// latest upload. The YouTube RSS feed lists entries newest first, so the
// first id in the document is the one we want.
type VideoRefresher struct {
	channelID string
	settings  settingsStore
	client    *resty.Client
}

func NewVideoRefresher(channelID string, settings settingsStore, httpClient *http.Client) *VideoRefresher {
	client := resty.NewWithClient(httpClient).
		SetBaseURL("https://www.youtube.com").
		SetTimeout(30 * time.Second)

	return &VideoRefresher{channelID: channelID, settings: settings, client: client}
}

func (v *VideoRefresher) Refresh(ctx context.Context) error {
	resp, err := v.client.R().
		SetContext(ctx).
		SetQueryParam("channel_id", v.channelID).
		Get("/feeds/videos.xml")
	if err != nil {
		return domain.WrapError(err, errcodes.SourceFetchFailure, "youtube feed fetch failed")
	}
	if resp.IsError() {
		return domain.NewError(errcodes.SourceFetchFailure, "youtube feed returned "+resp.Status())
	}

	feed := resp.Body()
	idMatch := videoIDPattern.FindSubmatch(feed)
	titleMatch := videoTitlePattern.FindSubmatch(feed)
	if idMatch == nil || titleMatch == nil {
		return domain.NewError(errcodes.SourceFetchFailure, "youtube feed has no entries")
	}

	video := entity.FeaturedVideo{
		VideoID: string(idMatch[1]),
		Title:   string(titleMatch[1]),
	}

	if err := v.settings.UpsertFeaturedVideo(ctx, video); err != nil {
		return fmt.Errorf("store featured video: %w", err)
	}

	logger(ctx).Info(
		"featured video updated",
		slog.String("video_id", video.VideoID),
		slog.String("title", video.Title),
	)

	return nil
}
