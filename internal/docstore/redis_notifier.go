package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const channelPrefix = "docstore::"

// RedisNotifier publishes changes over redis pub/sub, so every service
// instance sees writes made by the others.
type RedisNotifier struct {
	redisClient *redis.Client
}

func NewRedisNotifier(redisClient *redis.Client) *RedisNotifier {
	return &RedisNotifier{
		redisClient: redisClient,
	}
}

func channelName(topic string) string {
	return channelPrefix + topic
}

func (n *RedisNotifier) Publish(ctx context.Context, change Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}

	var errs error
	for _, topic := range changeTopics(change) {
		if err := n.redisClient.Publish(ctx, channelName(topic), payload).Err(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("publish %s: %w", topic, err))
		}
	}
	return errs
}

func (n *RedisNotifier) Subscribe(ctx context.Context, topic string) (Subscription, error) {
	pubsub := n.redisClient.Subscribe(ctx, channelName(topic))
	// wait for the subscription confirmation
	if _, err := pubsub.Receive(ctx); err != nil {
		closeErr := pubsub.Close()
		return nil, multierr.Append(fmt.Errorf("subscribe %s: %w", topic, err), closeErr)
	}

	sub := &redisSubscription{
		pubsub: pubsub,
		ch:     make(chan Change, localSubscriptionBuffer),
		done:   make(chan struct{}),
	}
	go sub.forward(pubsub.Channel())

	return sub, nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	ch     chan Change
	done   chan struct{}
	once   sync.Once
}

func (s *redisSubscription) forward(messages <-chan *redis.Message) {
	defer close(s.ch)
	for {
		select {
		case <-s.done:
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var change Change
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				log.Errorf("docstore notifier: bad change payload on %s: %s", msg.Channel, err)
				continue
			}
			select {
			case s.ch <- change:
			case <-s.done:
				return
			default:
				// subscriber is behind, a pending change already makes it re-read
			}
		}
	}
}

func (s *redisSubscription) Changes() <-chan Change {
	return s.ch
}

func (s *redisSubscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}
