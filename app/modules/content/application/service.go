package contentservice

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	authdomain "github.com/Black-And-White-Club/league-admin/app/modules/auth/domain"
	contentdb "github.com/Black-And-White-Club/league-admin/app/modules/content/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/events"
	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
	"github.com/Black-And-White-Club/league-admin/app/shared/crud"
	"github.com/Black-And-White-Club/league-admin/app/shared/observability"
	"github.com/Black-And-White-Club/league-admin/app/shared/observability/attr"
	"github.com/Black-And-White-Club/league-admin/app/shared/telemetry"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMaxMediaBytes is the upload limit used when none is configured.
const DefaultMaxMediaBytes = 5 << 20

// Config holds media settings.
type Config struct {
	MaxMediaBytes int64
	PublicBaseURL string
}

// ContentService owns news, carousel slides and media blobs.
type ContentService struct {
	repo      contentdb.Repository
	scope     telemetry.Scope
	publisher message.Publisher
	logger    *slog.Logger
	config    Config
	now       func() time.Time

	News   *NewsService
	Slides *crud.Service[contentdb.CarouselSlide, *contentdb.CarouselSlide]
}

// NewContentService creates a new ContentService. publisher may be nil.
func NewContentService(
	repo contentdb.Repository,
	publisher message.Publisher,
	cfg Config,
	logger *slog.Logger,
	metrics observability.ServiceMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ContentService {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxMediaBytes <= 0 {
		cfg.MaxMediaBytes = DefaultMaxMediaBytes
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	s := &ContentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		config:    cfg,
		now:       time.Now,
		scope: telemetry.Scope{
			Service: "ContentService",
			Logger:  logger,
			Tracer:  tracer,
			Metrics: metrics,
			DB:      db,
		},
	}

	s.News = &NewsService{
		Service: crud.NewService[contentdb.News](s.scope, repo.News(), "News", crud.Options[contentdb.News]{
			Validate: s.validateNews,
		}),
		content: s,
	}
	s.Slides = crud.NewService[contentdb.CarouselSlide](s.scope, repo.Slides(), "CarouselSlide", crud.Options[contentdb.CarouselSlide]{
		Validate: s.validateSlide,
	})
	return s
}

// NewsService is the news CRUD service. Creating an article publishes
// news.published once the write has committed.
type NewsService struct {
	*crud.Service[contentdb.News, *contentdb.News]
	content *ContentService
}

// Create stores an article and announces it.
func (n *NewsService) Create(ctx context.Context, news *contentdb.News) (*contentdb.News, error) {
	created, err := n.Service.Create(ctx, news)
	if err != nil {
		return nil, err
	}
	n.content.publish(ctx, events.NewsPublished, events.NewsPublishedPayload{
		NewsID:     created.ID,
		Title:      created.Title,
		OccurredAt: n.content.now().UTC(),
	})
	return created, nil
}

func (s *ContentService) validateNews(_ context.Context, _ bun.IDB, n *contentdb.News, _ string) error {
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" {
		return apperr.Invalid("news title is required")
	}
	if strings.TrimSpace(n.Body) == "" {
		return apperr.Invalid("news body is required")
	}
	if n.PublishedAt.IsZero() {
		n.PublishedAt = s.now().UTC()
	}
	if n.ImageURL != "" && !validURL(n.ImageURL) {
		return apperr.Invalid("news image url %q is not a valid url", n.ImageURL)
	}
	return nil
}

func (s *ContentService) validateSlide(_ context.Context, _ bun.IDB, c *contentdb.CarouselSlide, _ string) error {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return apperr.Invalid("slide title is required")
	}
	if c.ImageURL == "" || !validURL(c.ImageURL) {
		return apperr.Invalid("slide image url is required")
	}
	if c.LinkURL != "" && !validURL(c.LinkURL) {
		return apperr.Invalid("slide link url %q is not a valid url", c.LinkURL)
	}
	if c.Position < 0 {
		return apperr.Invalid("slide position must not be negative")
	}
	return nil
}

// validURL accepts absolute http(s) URLs and server-relative paths such as
// those returned by media uploads.
func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return strings.HasPrefix(raw, "/")
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// publish emits an event. A bus failure is logged and does not fail the
// operation that produced it.
func (s *ContentService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	msg, err := events.NewMessage(ctx, topic, authdomain.ActorFromContext(ctx), payload)
	if err == nil {
		err = s.publisher.Publish(topic, msg)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}
