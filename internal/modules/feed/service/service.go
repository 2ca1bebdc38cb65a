package service

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/gorilla/feeds"
	modlogDomain "github.com/reshetovitsme/groupguard/internal/modules/modlog/domain"
	modlogService "github.com/reshetovitsme/groupguard/internal/modules/modlog/service"
	"github.com/samber/oops"
)

// FeedSize is the number of log entries in a generated feed
const FeedSize = 50

// Service renders moderation log scopes as RSS feeds
type Service struct {
	modlog *modlogService.Service
	now    func() time.Time
}

// New creates a new feed service
func New(modlog *modlogService.Service) *Service {
	return &Service{
		modlog: modlog,
		now:    time.Now,
	}
}

// GenerateFeed builds a feed of the most recent entries of scope
func (s *Service) GenerateFeed(ctx context.Context, scope, title, link string) (*feeds.Feed, error) {
	entries, err := s.modlog.GetEntries(ctx, scope, FeedSize)
	if err != nil {
		return nil, oops.With("scope", scope, "context", "failed to get log entries").Wrap(err)
	}

	feed := &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: link},
		Description: fmt.Sprintf("Moderation log: %s", scope),
		Created:     s.now(),
	}
	if len(entries) > 0 {
		feed.Updated = entries[0].CreatedAt
	}

	items := make([]*feeds.Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, entryToFeedItem(entry, link))
	}
	feed.Items = items
	return feed, nil
}

func entryToFeedItem(entry *modlogDomain.Entry, link string) *feeds.Item {
	description := entry.Reason
	if description == "" {
		description = "No reason given"
	}

	content := fmt.Sprintf("<p><strong>%s</strong> by %d on %d</p><p>%s</p>",
		html.EscapeString(entry.Action.String()), entry.ActorID, entry.TargetID, html.EscapeString(description))

	return &feeds.Item{
		Title:       truncate(fmt.Sprintf("%s %d", entry.Action, entry.TargetID), 100),
		Link:        &feeds.Link{Href: link},
		Description: description,
		Content:     content,
		Author:      &feeds.Author{Name: fmt.Sprintf("%d", entry.ActorID)},
		Created:     entry.CreatedAt,
		Id:          entry.ID,
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
