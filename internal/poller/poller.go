// Package poller answers incremental refresh requests: given the newest post a
// client has seen, it reports the posts published since, or that there are none.
package poller

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"post-service/internal/models"
	"post-service/internal/observability"
)

type updateSource interface {
	GetUpdates(ctx context.Context, groupID int64, lastSeenID int64) (models.PostUpdate, error)
}

// Poller is stateless and safe for concurrent use.
type Poller struct {
	source updateSource
	tracer trace.Tracer
}

func New(source updateSource) *Poller {
	return &Poller{source: source, tracer: otel.Tracer("post-service/poller")}
}

// Poll returns the group's posts with an id above lastSeenID, newest first.
// Status is models.NoUpdate with an empty, non-nil Posts when nothing is newer;
// storage failures are returned as errors, never as a status.
func (p *Poller) Poll(ctx context.Context, groupID, lastSeenID int64) (models.PostUpdate, error) {
	ctx, span := p.tracer.Start(ctx, "poller.Poll", trace.WithAttributes(
		attribute.Int64("group.id", groupID),
		attribute.Int64("post.last_seen_id", lastSeenID),
	))
	defer span.End()

	update, err := p.source.GetUpdates(ctx, groupID, lastSeenID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "get updates")
		observability.IncPollResult("error")
		return models.PostUpdate{}, err
	}

	if update.Status == models.NoUpdate || len(update.Posts) == 0 {
		update = models.PostUpdate{Status: models.NoUpdate, Posts: []models.Post{}}
	}

	span.SetAttributes(
		attribute.String("poll.outcome", update.Status.String()),
		attribute.Int("poll.posts", len(update.Posts)),
	)
	observability.IncPollResult(update.Status.String())
	return update, nil
}
