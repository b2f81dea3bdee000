package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/league-admin/config"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/nats-io/nkeys"
)

// StreamName is the JetStream stream mirrored domain events are stored in.
const StreamName = "LEAGUE_ADMIN"

// SubjectPrefix prefixes every mirrored topic.
const SubjectPrefix = "league-admin."

// EventBus delivers domain events to in-process subscribers and, when NATS is
// configured, mirrors them to JetStream for external consumers.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

type eventBus struct {
	local    *gochannel.GoChannel
	js       jetstream.JetStream
	natsConn *nc.Conn
	logger   *slog.Logger
}

// NewEventBus creates the bus. An empty cfg.URL keeps events in process.
func NewEventBus(ctx context.Context, cfg config.NATSConfig, logger *slog.Logger) (EventBus, error) {
	eb := &eventBus{
		local: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 256},
			watermill.NewSlogLogger(logger),
		),
		logger: logger,
	}

	if cfg.URL == "" {
		logger.InfoContext(ctx, "NATS not configured, events stay in process")
		return eb, nil
	}

	opts := []nc.Option{
		nc.Name("league-admin"),
		nc.RetryOnFailedConnect(true),
	}
	if cfg.NKeySeed != "" {
		opt, err := nkeyOption(cfg.NKeySeed)
		if err != nil {
			eb.local.Close()
			return nil, err
		}
		opts = append(opts, opt)
	}

	natsConn, err := nc.Connect(cfg.URL, opts...)
	if err != nil {
		eb.local.Close()
		logger.Error("Failed to connect to NATS", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(natsConn)
	if err != nil {
		natsConn.Close()
		eb.local.Close()
		logger.Error("Failed to initialize JetStream", slog.Any("error", err))
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	if err := InitializeStreams(ctx, js, logger); err != nil {
		natsConn.Close()
		eb.local.Close()
		return nil, err
	}

	eb.natsConn = natsConn
	eb.js = js
	return eb, nil
}

// nkeyOption authenticates the connection with the key pair derived from seed.
func nkeyOption(seed string) (nc.Option, error) {
	kp, err := nkeys.FromSeed([]byte(seed))
	if err != nil {
		return nil, fmt.Errorf("invalid NATS nkey seed: %w", err)
	}
	pub, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive NATS public key: %w", err)
	}
	return nc.Nkey(pub, func(nonce []byte) ([]byte, error) {
		return kp.Sign(nonce)
	}), nil
}

func (eb *eventBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
	}

	if err := eb.local.Publish(topic, messages...); err != nil {
		return fmt.Errorf("failed to publish %s locally: %w", topic, err)
	}

	if eb.js == nil {
		return nil
	}

	subject := SubjectPrefix + topic
	for _, msg := range messages {
		natsMsg := &nc.Msg{Subject: subject, Data: msg.Payload, Header: nc.Header{}}
		natsMsg.Header.Set(nc.MsgIdHdr, msg.UUID)
		for k, v := range msg.Metadata {
			natsMsg.Header.Set(k, v)
		}

		ack, err := eb.js.PublishMsg(msg.Context(), natsMsg)
		if err != nil {
			eb.logger.Error("Failed to publish message",
				slog.String("subject", subject),
				slog.Any("error", err),
			)
			return fmt.Errorf("failed to publish message to JetStream: %w", err)
		}

		eb.logger.Debug("Message published",
			slog.String("subject", subject),
			slog.Uint64("sequence", ack.Sequence),
		)
	}
	return nil
}

func (eb *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return eb.local.Subscribe(ctx, topic)
}

// Close closes all NATS and Watermill resources.
func (eb *eventBus) Close() error {
	if err := eb.local.Close(); err != nil {
		eb.logger.Error("Error closing local pubsub", "error", err)
	}
	if eb.natsConn != nil {
		if err := eb.natsConn.Drain(); err != nil {
			eb.logger.Error("Error draining NATS connection", "error", err)
			eb.natsConn.Close()
		}
	}
	return nil
}
