package contentservice

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"

	contentdb "github.com/Black-And-White-Club/league-admin/app/modules/content/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
	"github.com/Black-And-White-Club/league-admin/app/shared/observability/attr"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/Black-And-White-Club/league-admin/app/shared/results"
	"github.com/Black-And-White-Club/league-admin/app/shared/telemetry"
	"github.com/uptrace/bun"
)

var allowedMediaTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// MaxMediaBytes returns the configured upload limit.
func (s *ContentService) MaxMediaBytes() int64 { return s.config.MaxMediaBytes }

// Upload stores an image blob. An empty contentType is sniffed from data.
func (s *ContentService) Upload(ctx context.Context, name, contentType string, data []byte) (*contentdb.MediaObject, error) {
	return telemetry.Unwrap(telemetry.WithTelemetry(s.scope, ctx, "UploadMedia", name, func(ctx context.Context) (results.OperationResult[*contentdb.MediaObject, error], error) {
		return telemetry.RunInTx(s.scope, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*contentdb.MediaObject, error], error) {
			return s.uploadLogic(ctx, db, name, contentType, data)
		})
	}))
}

func (s *ContentService) uploadLogic(ctx context.Context, db bun.IDB, name, contentType string, data []byte) (results.OperationResult[*contentdb.MediaObject, error], error) {
	name = path.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == "/" {
		return results.FailureResult[*contentdb.MediaObject, error](apperr.Invalid("media name is required")), nil
	}
	if len(data) == 0 {
		return results.FailureResult[*contentdb.MediaObject, error](apperr.Invalid("media %q is empty", name)), nil
	}
	if int64(len(data)) > s.config.MaxMediaBytes {
		return results.FailureResult[*contentdb.MediaObject, error](
			fmt.Errorf("%w: %d > %d bytes", ErrMediaTooLarge, len(data), s.config.MaxMediaBytes),
		), nil
	}

	mediaType := normalizeMediaType(contentType, data)
	if !allowedMediaTypes[mediaType] {
		return results.FailureResult[*contentdb.MediaObject, error](
			fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mediaType),
		), nil
	}

	obj := &contentdb.MediaObject{
		Name:        name,
		ContentType: mediaType,
		Size:        int64(len(data)),
		Data:        data,
	}
	if err := s.repo.Media().Create(ctx, db, obj); err != nil {
		return results.OperationResult[*contentdb.MediaObject, error]{}, fmt.Errorf("failed to store media: %w", err)
	}
	s.withURL(obj)

	s.logger.InfoContext(ctx, "Media uploaded",
		attr.ExtractCorrelationID(ctx),
		attr.String("media_id", obj.ID),
		attr.String("content_type", obj.ContentType),
		attr.Int64("size", obj.Size),
	)
	return results.SuccessResult[*contentdb.MediaObject, error](obj), nil
}

// GetMedia returns a stored blob including its bytes.
func (s *ContentService) GetMedia(ctx context.Context, id string) (*contentdb.MediaObject, error) {
	return telemetry.Unwrap(telemetry.WithTelemetry(s.scope, ctx, "GetMedia", id, func(ctx context.Context) (results.OperationResult[*contentdb.MediaObject, error], error) {
		obj, err := s.repo.Media().Get(ctx, nil, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return results.FailureResult[*contentdb.MediaObject, error](fmt.Errorf("media %q: %w", id, apperr.ErrNotFound)), nil
			}
			return results.OperationResult[*contentdb.MediaObject, error]{}, fmt.Errorf("failed to get media: %w", err)
		}
		s.withURL(obj)
		return results.SuccessResult[*contentdb.MediaObject, error](obj), nil
	}))
}

// DeleteMedia removes a blob.
func (s *ContentService) DeleteMedia(ctx context.Context, id string) error {
	_, err := telemetry.Unwrap(telemetry.WithTelemetry(s.scope, ctx, "DeleteMedia", id, func(ctx context.Context) (results.OperationResult[struct{}, error], error) {
		if err := s.repo.Media().Delete(ctx, nil, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return results.FailureResult[struct{}, error](fmt.Errorf("media %q: %w", id, apperr.ErrNotFound)), nil
			}
			return results.OperationResult[struct{}, error]{}, fmt.Errorf("failed to delete media: %w", err)
		}
		return results.SuccessResult[struct{}, error](struct{}{}), nil
	}))
	return err
}

func (s *ContentService) withURL(obj *contentdb.MediaObject) {
	obj.URL = s.config.PublicBaseURL + "/" + obj.ID
}

func normalizeMediaType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared == "" || declared == "application/octet-stream" {
		declared = http.DetectContentType(data)
	}
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return strings.ToLower(declared)
	}
	return mediaType
}
