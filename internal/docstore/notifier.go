package docstore

import (
	"context"
	"sync"
)

type Op string

const (
	OpSet    Op = "set"
	OpCreate Op = "create"
	OpDelete Op = "delete"
)

// Change tells watchers that something under a path has changed.
// Watchers re-read the store, the change itself carries no data.
type Change struct {
	Path       string `json:"path"`
	Collection string `json:"collection"`
	Op         Op     `json:"op"`
}

// Subscription delivers changes for one topic until closed.
type Subscription interface {
	Changes() <-chan Change
	Close() error
}

// Notifier fans out store changes to subscribers. A change is published to
// its document path, its collection topic and AllChangesTopic.
type Notifier interface {
	Publish(ctx context.Context, change Change) error
	// Subscribe returns once the subscription is active, so no change
	// published after it returns is missed.
	Subscribe(ctx context.Context, topic string) (Subscription, error)
}

// AllChangesTopic receives every change, whatever its path.
const AllChangesTopic = "*"

func changeTopics(change Change) []string {
	if change.Collection == "" || change.Collection == change.Path {
		return []string{change.Path, AllChangesTopic}
	}
	return []string{change.Path, change.Collection, AllChangesTopic}
}

const localSubscriptionBuffer = 64

// LocalNotifier is an in-process Notifier for single node setups and tests.
type LocalNotifier struct {
	mu   sync.Mutex
	subs map[string]map[*localSubscription]struct{}
}

func NewLocalNotifier() *LocalNotifier {
	return &LocalNotifier{
		subs: make(map[string]map[*localSubscription]struct{}),
	}
}

func (n *LocalNotifier) Publish(_ context.Context, change Change) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, topic := range changeTopics(change) {
		for sub := range n.subs[topic] {
			select {
			case sub.ch <- change:
			default:
				// subscriber is behind, a pending change already makes it re-read
			}
		}
	}
	return nil
}

func (n *LocalNotifier) Subscribe(_ context.Context, topic string) (Subscription, error) {
	sub := &localSubscription{
		notifier: n,
		topic:    topic,
		ch:       make(chan Change, localSubscriptionBuffer),
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs[topic] == nil {
		n.subs[topic] = make(map[*localSubscription]struct{})
	}
	n.subs[topic][sub] = struct{}{}

	return sub, nil
}

func (n *LocalNotifier) unsubscribe(sub *localSubscription) {
	n.mu.Lock()
	defer n.mu.Unlock()

	topicSubs, ok := n.subs[sub.topic]
	if !ok {
		return
	}
	if _, ok := topicSubs[sub]; !ok {
		return
	}
	delete(topicSubs, sub)
	if len(topicSubs) == 0 {
		delete(n.subs, sub.topic)
	}
	close(sub.ch)
}

type localSubscription struct {
	notifier *LocalNotifier
	topic    string
	ch       chan Change
	once     sync.Once
}

func (s *localSubscription) Changes() <-chan Change {
	return s.ch
}

func (s *localSubscription) Close() error {
	s.once.Do(func() {
		s.notifier.unsubscribe(s)
	})
	return nil
}
