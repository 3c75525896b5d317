package view

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/trainingdiary/internal/diary"
	"github.com/2beens/trainingdiary/internal/history"
	"github.com/2beens/trainingdiary/internal/nutrition"
	"github.com/2beens/trainingdiary/internal/plan"
	"github.com/2beens/trainingdiary/internal/profile"
	"github.com/2beens/trainingdiary/internal/respond"
	"github.com/2beens/trainingdiary/internal/telemetry/metrics"
)

//go:generate mockgen -source=$GOFILE -destination=controller_mocks_test.go -package=view_test

type profileStore interface {
	Get(ctx context.Context, userID string) (*diary.UserProfile, error)
	Save(ctx context.Context, userID string, profile diary.UserProfile) error
}

type workoutLister interface {
	List(ctx context.Context, userID string) ([]diary.WorkoutLogEntry, error)
}

type nutritionLister interface {
	List(ctx context.Context, userID string) ([]diary.NutritionLogEntry, error)
}

type profileObserver interface {
	Observe(ctx context.Context, userID string) (<-chan profile.Snapshot, error)
}

type planGenerator interface {
	Generate(ctx context.Context, req plan.GenerateRequest, current *diary.UserProfile) (*plan.Result, error)
}

// Deps are the data sources a controller renders from. With an Observer,
// every controller follows its user's profile for as long as it lives.
type Deps struct {
	Profiles  profileStore
	Observer  profileObserver
	Workouts  workoutLister
	Nutrition nutritionLister
	Generator planGenerator
	Metrics   *metrics.Manager
}

// Model is what the client shows: the active screen, its data and the
// visible notifications.
type Model struct {
	Screen        Screen         `json:"screen"`
	Screens       []Screen       `json:"screens"`
	Data          any            `json:"data,omitempty"`
	Notifications []Notification `json:"notifications"`
}

type WorkoutEntryData struct {
	Plan diary.WorkoutPlan `json:"workoutPlan"`
}

type PlanViewData struct {
	Plan           diary.WorkoutPlan    `json:"workoutPlan"`
	NutritionGoals diary.NutritionGoals `json:"nutritionGoals"`
}

type HistoryData struct {
	Workouts  []history.WorkoutDay   `json:"workouts"`
	Nutrition []history.NutritionDay `json:"nutrition"`
}

type SettingsData struct {
	Draft      diary.UserProfile `json:"draft"`
	Dirty      bool              `json:"dirty"`
	Generating bool              `json:"generating"`
}

// Controller holds the UI state of one login session. Screen changes are
// plain state changes, all validation happens in the form handlers.
type Controller struct {
	userID string
	deps   Deps
	Now    func() time.Time
	// nil without Deps.Observer
	session *profile.Session

	mu            sync.Mutex
	screen        Screen
	notifications notifications
	// settings form state, nil until the settings screen is first rendered
	draft *diary.UserProfile
	dirty bool
	// generation tickets: a result is applied only if its ticket is still active
	ticketSeq    uint64
	activeTicket uint64
	// last good render per screen, shown again when a read fails
	lastData map[Screen]any
}

func NewController(userID string, deps Deps) *Controller {
	c := &Controller{
		userID:   userID,
		deps:     deps,
		Now:      time.Now,
		screen:   ScreenWorkoutEntry,
		lastData: make(map[Screen]any),
	}
	if deps.Observer != nil {
		c.session = profile.NewSession(deps.Observer, userID)
		c.session.OnChange(c.profileChanged)
	}
	return c
}

// Start subscribes to the user's profile. A failed subscription leaves the
// controller reading the store directly.
func (c *Controller) Start() {
	if c.session == nil {
		return
	}
	err := c.session.Start(context.Background())
	switch {
	case err == nil:
	case errors.Is(err, profile.ErrSessionClosed):
		log.Debugf("profile session for %s closed before start", c.userID)
	default:
		log.Errorf("profile session for %s: %s", c.userID, err)
	}
}

// Close ends the profile subscription.
func (c *Controller) Close() {
	if c.session != nil {
		c.session.Close()
	}
}

// ProfileState is the state of the profile subscription.
func (c *Controller) ProfileState() profile.State {
	if c.session == nil {
		return profile.StateUninitialized
	}
	return c.session.State()
}

// profileChanged keeps an untouched settings form in line with the profile
// saved elsewhere.
func (c *Controller) profileChanged(p diary.UserProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft != nil && !c.dirty {
		c.draft = &p
	}
}

// currentProfile is the profile of a ready subscription. Before Start, or
// when loading failed, it is read from the store.
func (c *Controller) currentProfile(ctx context.Context) (*diary.UserProfile, error) {
	if c.session != nil && c.session.State() != profile.StateUninitialized {
		p, err := c.session.WaitReady(ctx)
		if err == nil {
			return &p, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}
		log.Warnf("profile session for %s failed, reading the store: %s", c.userID, err)
	}
	return c.deps.Profiles.Get(ctx, c.userID)
}

func (c *Controller) UserID() string {
	return c.userID
}

func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

// Navigate switches the active screen. Unknown names go to workout entry.
// Leaving settings cancels interest in any running plan generation.
func (c *Controller) Navigate(name string) Screen {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := ParseScreen(name)
	if c.screen == ScreenSettings && next != ScreenSettings {
		c.activeTicket = 0
	}
	c.screen = next
	return next
}

func (c *Controller) Notify(message string, isError bool) Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notifications.add(message, isError, c.Now())
}

func (c *Controller) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notifications.active(c.Now())
}

// NotifyError shows err the way the HTTP layer would word it.
func (c *Controller) NotifyError(action string, err error) {
	_, msg := respond.Status(action, err)
	c.Notify(msg, true)
}

// Render builds the model of the active screen. A failing read shows an
// error notification and the last good data of the screen.
func (c *Controller) Render(ctx context.Context) Model {
	screen := c.Screen()

	data, err := c.screenData(ctx, screen)

	c.mu.Lock()
	if err != nil {
		log.Errorf("render %s for %s: %s", screen, c.userID, err)
		_, msg := respond.Status("load "+string(screen), err)
		c.notifications.add(msg, true, c.Now())
		data = c.lastData[screen]
	} else {
		c.lastData[screen] = data
	}
	model := Model{
		Screen:        screen,
		Screens:       Screens,
		Data:          data,
		Notifications: c.notifications.active(c.Now()),
	}
	c.mu.Unlock()

	return model
}

func (c *Controller) screenData(ctx context.Context, screen Screen) (any, error) {
	switch screen {
	case ScreenNutritionEntry:
		p, err := c.currentProfile(ctx)
		if err != nil {
			return nil, err
		}
		entries, err := c.deps.Nutrition.List(ctx, c.userID)
		if err != nil {
			return nil, err
		}
		return nutrition.Summarize(entries, p.NutritionGoals, diary.DateKey(c.Now())), nil
	case ScreenPlanView:
		p, err := c.currentProfile(ctx)
		if err != nil {
			return nil, err
		}
		return PlanViewData{Plan: p.WorkoutPlan, NutritionGoals: p.NutritionGoals}, nil
	case ScreenHistory:
		workouts, err := c.deps.Workouts.List(ctx, c.userID)
		if err != nil {
			return nil, err
		}
		foods, err := c.deps.Nutrition.List(ctx, c.userID)
		if err != nil {
			return nil, err
		}
		return HistoryData{
			Workouts:  history.WorkoutHistory(workouts),
			Nutrition: history.NutritionHistory(foods),
		}, nil
	case ScreenSettings:
		return c.settingsData(ctx)
	default:
		p, err := c.currentProfile(ctx)
		if err != nil {
			return nil, err
		}
		return WorkoutEntryData{Plan: p.WorkoutPlan}, nil
	}
}

func (c *Controller) settingsData(ctx context.Context) (SettingsData, error) {
	c.mu.Lock()
	hasDraft := c.draft != nil
	c.mu.Unlock()

	if !hasDraft {
		p, err := c.currentProfile(ctx)
		if err != nil {
			return SettingsData{}, err
		}
		c.mu.Lock()
		if c.draft == nil {
			draft := p.Clone()
			c.draft = &draft
			c.dirty = false
		}
		c.mu.Unlock()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return SettingsData{
		Draft:      c.draft.Clone(),
		Dirty:      c.dirty,
		Generating: c.activeTicket != 0,
	}, nil
}

// SetDraft replaces the settings form state. It is not validated until saved.
func (c *Controller) SetDraft(draft diary.UserProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := draft.Clone()
	c.draft = &d
	c.dirty = true
}

// Draft returns the settings form state, false before it was loaded.
func (c *Controller) Draft() (diary.UserProfile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return diary.UserProfile{}, false
	}
	return c.draft.Clone(), true
}

// SaveDraft writes the settings form state as the profile. On failure the
// form state is kept so the user can retry.
func (c *Controller) SaveDraft(ctx context.Context) error {
	draft, ok := c.Draft()
	if !ok {
		p, err := c.currentProfile(ctx)
		if err != nil {
			c.NotifyError("save settings", err)
			return err
		}
		draft = *p
	}

	if err := c.deps.Profiles.Save(ctx, c.userID, draft); err != nil {
		c.NotifyError("save settings", err)
		return err
	}

	c.mu.Lock()
	c.dirty = false
	c.mu.Unlock()
	c.Notify("Settings saved", false)
	return nil
}

// BeginGeneration starts a new generation and returns its ticket. A newer
// ticket supersedes older ones.
func (c *Controller) BeginGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticketSeq++
	c.activeTicket = c.ticketSeq
	return c.activeTicket
}

// ApplyGenerated puts a generated plan into the settings form, as long as the
// ticket is still active. It reports whether the result was used. A failed
// generation leaves the form untouched.
func (c *Controller) ApplyGenerated(ticket uint64, res *plan.Result, genErr error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ticket == 0 || ticket != c.activeTicket || c.screen != ScreenSettings {
		log.Debugf("dropping generated plan for %s, ticket %d no longer active", c.userID, ticket)
		return false
	}
	c.activeTicket = 0

	now := c.Now()
	if genErr != nil {
		_, msg := respond.Status("generate plan", genErr)
		c.notifications.add(msg, true, now)
		return true
	}

	draft := GeneratedDraft(res)
	c.draft = &draft
	c.dirty = true
	if res.Warning != nil {
		c.notifications.add(res.Warning.Message(), false, now)
	} else {
		c.notifications.add("Plan generated, review it and save", false, now)
	}
	return true
}

// GeneratedDraft is the form state for an AI result.
func GeneratedDraft(res *plan.Result) diary.UserProfile {
	return diary.UserProfile{
		WorkoutPlan:    res.Plan.Clone(),
		NutritionGoals: res.NutritionGoals,
	}
}

// Generate runs one AI generation against the current form state and applies
// the result if the user is still on the settings screen.
func (c *Controller) Generate(ctx context.Context, req plan.GenerateRequest) (applied bool, err error) {
	ticket := c.BeginGeneration()

	current, ok := c.Draft()
	if !ok {
		p, err := c.currentProfile(ctx)
		if err != nil {
			c.ApplyGenerated(ticket, nil, err)
			return false, err
		}
		current = *p
	}

	res, err := profile.Generate(ctx, c.deps.Generator, c.deps.Metrics, req, &current)
	return c.ApplyGenerated(ticket, res, err), err
}
