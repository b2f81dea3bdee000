package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/nats-io/nats.go/jetstream"
)

// InitializeStreams makes sure the event stream exists and covers the
// subject prefix.
func InitializeStreams(ctx context.Context, js jetstream.JetStream, logger *slog.Logger) error {
	subject := SubjectPrefix + ">"

	stream, err := js.Stream(ctx, StreamName)
	if errors.Is(err, jetstream.ErrStreamNotFound) {
		if _, err := js.CreateStream(ctx, jetstream.StreamConfig{
			Name:     StreamName,
			Subjects: []string{subject},
		}); err != nil {
			logger.Error("Failed to create JetStream stream", slog.String("stream", StreamName), slog.Any("error", err))
			return fmt.Errorf("failed to create stream: %w", err)
		}
		logger.Info("Created JetStream stream", slog.String("stream", StreamName))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check stream: %w", err)
	}

	info, err := stream.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get stream info: %w", err)
	}
	if slices.Contains(info.Config.Subjects, subject) {
		return nil
	}

	info.Config.Subjects = append(info.Config.Subjects, subject)
	if _, err := js.UpdateStream(ctx, info.Config); err != nil {
		return fmt.Errorf("failed to update stream with new subject: %w", err)
	}
	logger.Info("Stream updated with new subject", slog.String("stream", StreamName), slog.String("subject", subject))
	return nil
}
