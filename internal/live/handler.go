package live

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/trainingdiary/internal/auth"
	"github.com/2beens/trainingdiary/internal/nutrition"
	"github.com/2beens/trainingdiary/internal/profile"
	"github.com/2beens/trainingdiary/internal/respond"
	"github.com/2beens/trainingdiary/internal/telemetry/metrics"
	"github.com/2beens/trainingdiary/internal/workoutlog"
)

const (
	MessageProfile   = "profile"
	MessageWorkouts  = "workouts"
	MessageNutrition = "nutrition"

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Message is one snapshot pushed to the client. Error is set instead of
// Data when the snapshot could not be read.
type Message struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type profileObserver interface {
	Observe(ctx context.Context, userID string) (<-chan profile.Snapshot, error)
}

type workoutWatcher interface {
	Watch(ctx context.Context, userID string) (<-chan workoutlog.Snapshot, error)
}

type nutritionWatcher interface {
	Watch(ctx context.Context, userID string) (<-chan nutrition.Snapshot, error)
}

// Handler streams a user's profile and logs over a websocket, one message
// per store snapshot, until the client goes away.
type Handler struct {
	profiles  profileObserver
	workouts  workoutWatcher
	nutrition nutritionWatcher
	metrics   *metrics.Manager
	upgrader  websocket.Upgrader
}

func NewHandler(
	profiles profileObserver,
	workouts workoutWatcher,
	nutrition nutritionWatcher,
	allowedOrigins []string,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		profiles:  profiles,
		workouts:  workouts,
		nutrition: nutrition,
		metrics:   metricsManager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, allowed := range allowedOrigins {
			if allowed == "*" || allowed == origin {
				return true
			}
		}
		log.Warnf("live: rejected origin %s", origin)
		return false
	}
}

func (h *Handler) HandleLive(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, "live updates", auth.ErrNotLoggedIn)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader already answered the request
		log.Errorf("live: upgrade for %s: %s", identity.UserID, err)
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.GaugeLiveClients.Inc()
		defer h.metrics.GaugeLiveClients.Dec()
	}

	ctx, cancel := context.WithCancel(r.Context())
	messages, err := h.subscribe(ctx, identity.UserID)
	if err != nil {
		cancel()
		_, msg := respond.Status("live updates", err)
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseInternalServerErr, msg))
		return
	}
	defer func() {
		cancel()
		// wait for the forwarders, they stop once their streams close
		for range messages {
		}
	}()

	log.Debugf("live: %s connected", identity.UserID)
	go readLoop(conn, cancel)
	writeLoop(ctx, conn, messages)
	log.Debugf("live: %s disconnected", identity.UserID)
}

// subscribe merges the three snapshot streams. Each stream keeps its own
// order. The returned channel is closed after ctx is done and all streams ended.
func (h *Handler) subscribe(ctx context.Context, userID string) (<-chan Message, error) {
	profiles, err := h.profiles.Observe(ctx, userID)
	if err != nil {
		return nil, err
	}
	workouts, err := h.workouts.Watch(ctx, userID)
	if err != nil {
		return nil, err
	}
	foods, err := h.nutrition.Watch(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make(chan Message)
	var wg sync.WaitGroup
	wg.Add(3)
	go forward(ctx, &wg, out, profiles, func(s profile.Snapshot) Message {
		if s.Err != nil {
			return errorMessage(MessageProfile, s.Err)
		}
		return Message{Type: MessageProfile, Data: s.Profile}
	})
	go forward(ctx, &wg, out, workouts, func(s workoutlog.Snapshot) Message {
		if s.Err != nil {
			return errorMessage(MessageWorkouts, s.Err)
		}
		return Message{Type: MessageWorkouts, Data: s.Entries}
	})
	go forward(ctx, &wg, out, foods, func(s nutrition.Snapshot) Message {
		if s.Err != nil {
			return errorMessage(MessageNutrition, s.Err)
		}
		return Message{Type: MessageNutrition, Data: s.Entries}
	})
	go func() {
		wg.Wait()
		close(out)
	}()

	return out, nil
}

func forward[S any](ctx context.Context, wg *sync.WaitGroup, out chan<- Message, in <-chan S, toMessage func(S) Message) {
	defer wg.Done()
	for s := range in {
		select {
		case out <- toMessage(s):
		case <-ctx.Done():
		}
	}
}

func errorMessage(kind string, err error) Message {
	log.Errorf("live: %s snapshot: %s", kind, err)
	_, msg := respond.Status("load "+kind, err)
	return Message{Type: kind, Error: msg}
}

// readLoop only watches for the client going away. Clients do not send
// anything besides control frames.
func readLoop(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debugf("live: read: %s", err)
			}
			return
		}
	}
}

func writeLoop(ctx context.Context, conn *websocket.Conn, messages <-chan Message) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				log.Debugf("live: write %s: %s", msg.Type, err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
