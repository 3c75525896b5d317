package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/trainingdiary/internal/auth"
	"github.com/2beens/trainingdiary/internal/config"
	"github.com/2beens/trainingdiary/internal/db"
	"github.com/2beens/trainingdiary/internal/docstore"
	"github.com/2beens/trainingdiary/internal/gemini"
	"github.com/2beens/trainingdiary/internal/live"
	"github.com/2beens/trainingdiary/internal/middleware"
	"github.com/2beens/trainingdiary/internal/misc"
	"github.com/2beens/trainingdiary/internal/nutrition"
	"github.com/2beens/trainingdiary/internal/plan"
	"github.com/2beens/trainingdiary/internal/profile"
	"github.com/2beens/trainingdiary/internal/telemetry/metrics"
	"github.com/2beens/trainingdiary/internal/telemetry/tracing"
	"github.com/2beens/trainingdiary/internal/view"
	"github.com/2beens/trainingdiary/internal/workoutlog"
)

const viewCleanupInterval = 10 * time.Minute

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	// nil when running on the in-memory store
	rateLimiter middleware.RequestRateLimiter

	authService      *auth.Service
	sessionsCleanup  *cron.Cron
	profiles         *profile.Adapter
	workoutRepo      *workoutlog.Repo
	workoutService   *workoutlog.Service
	nutritionRepo    *nutrition.Repo
	nutritionService *nutrition.Service
	generator        *plan.Generator
	viewRegistry     *view.Registry
	// stops the cache invalidation and profile subscriptions
	stopWatches context.CancelFunc

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config      *config.Config
	Secrets     config.Secrets
	VersionInfo string
}

// backend is the storage the rest of the server is wired on.
type backend struct {
	store    docstore.Store
	notifier docstore.Notifier
	users    usersRepo
	sessions sessionStore
}

type usersRepo interface {
	Add(ctx context.Context, user auth.User) error
	GetByEmail(ctx context.Context, email string) (*auth.User, error)
}

type sessionStore interface {
	Create(ctx context.Context, token string, identity auth.Identity, createdAt time.Time) error
	Get(ctx context.Context, token string, now time.Time) (*auth.Identity, error)
	Delete(ctx context.Context, token string) error
	ScanAndClean(ctx context.Context, now time.Time) int
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.Secrets.HoneycombEnabled, "training-diary")
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:       cfg,
		versionInfo:  params.VersionInfo,
		otelShutdown: otelShutdown,
	}

	var be *backend
	if cfg.UseMemoryStore {
		log.Warnln("using in-memory document store, nothing will be persisted")
		be = s.memoryBackend()
	} else {
		be, err = s.persistentBackend(ctx, params.Secrets)
		if err != nil {
			otelShutdown()
			return nil, err
		}
	}

	s.promRegistry = metrics.SetupPrometheus(s.dbPool, cfg.PostgresDBName)
	s.metricsManager = metrics.NewManager("diary", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	// watchers read the raw store, the cache drops documents changed by any instance
	watcher := docstore.NewWatcher(be.store, be.notifier)
	cachedStore := docstore.NewCachedStore(be.store, cfg.DocCacheSizeMB*1024*1024, cfg.DocCacheTTL())
	watchCtx, stopWatches := context.WithCancel(context.WithoutCancel(ctx))
	s.stopWatches = stopWatches
	if err := cachedStore.Follow(watchCtx, be.notifier); err != nil {
		stopWatches()
		s.closeBackends()
		otelShutdown()
		return nil, fmt.Errorf("document cache: %w", err)
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   cfg.GeminiTimeout(),
	}
	if params.Secrets.GeminiAPIKey == "" {
		log.Errorf("gemini API key not set, use DIARY_GEMINI_API_KEY env var to set it")
	}
	s.generator = plan.NewGenerator(gemini.NewClient(
		cfg.GeminiBaseURL,
		params.Secrets.GeminiAPIKey,
		cfg.GeminiModel,
		tracedHttpClient,
	))

	s.profiles = profile.NewAdapter(cachedStore, watcher)
	s.workoutRepo = workoutlog.NewRepo(cachedStore, watcher)
	s.workoutService = workoutlog.NewService(s.profiles, s.workoutRepo, s.metricsManager)
	s.nutritionRepo = nutrition.NewRepo(cachedStore, watcher)
	s.nutritionService = nutrition.NewService(s.profiles, s.nutritionRepo, s.metricsManager)

	s.viewRegistry = view.NewRegistry(view.Deps{
		Profiles:  s.profiles,
		Observer:  s.profiles,
		Workouts:  s.workoutService,
		Nutrition: s.nutritionService,
		Generator: s.generator,
		Metrics:   s.metricsManager,
	}, cfg.SessionTTL(), viewCleanupInterval)

	s.authService = auth.NewService(be.users, be.sessions)
	s.sessionsCleanup, err = auth.StartSessionCleanup(
		ctx,
		cfg.SessionCleanupSchedule,
		s.authService,
		func(n int) {
			s.metricsManager.CounterSessionsCleaned.Add(float64(n))
		},
	)
	if err != nil {
		stopWatches()
		s.closeBackends()
		otelShutdown()
		return nil, fmt.Errorf("session cleanup: %w", err)
	}

	return s, nil
}

func (s *Server) memoryBackend() *backend {
	notifier := docstore.NewLocalNotifier()
	return &backend{
		store:    docstore.NewMemStore(notifier),
		notifier: notifier,
		users:    auth.NewMemUserRepo(),
		sessions: auth.NewMemSessions(s.config.SessionTTL()),
	}
}

func (s *Server) persistentBackend(ctx context.Context, secrets config.Secrets) (*backend, error) {
	cfg := s.config
	dbParams := db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     secrets.PostgresPassword,
		TracingEnabled: secrets.HoneycombEnabled,
	}

	if cfg.RunMigrations {
		if err := db.Migrate(dbParams); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		log.Infoln("db migrations applied")
	}

	dbPool, err := db.NewDBPool(ctx, dbParams)
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}
	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}
	s.dbPool = dbPool

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: secrets.RedisPassword,
		DB:       0, // use default DB
	})
	if secrets.HoneycombEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}
	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}
	s.redisClient = rdb
	s.rateLimiter = redis_rate.NewLimiter(rdb)

	notifier := docstore.NewRedisNotifier(rdb)
	return &backend{
		store:    docstore.NewPsqlStore(dbPool, notifier),
		notifier: notifier,
		users:    auth.NewUserRepo(dbPool),
		sessions: auth.NewSessions(rdb, cfg.SessionTTL()),
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	misc.NewHandler(s.versionInfo).SetupRoutes(r)

	authHandler := auth.NewHandler(s.authService)
	r.Handle("/auth/signup", s.rateLimited("signup", s.config.AuthRateLimitPerMin, authHandler.HandleSignUp)).
		Methods("POST", "OPTIONS").Name("signup")
	r.Handle("/auth/signin", s.rateLimited("signin", s.config.AuthRateLimitPerMin, authHandler.HandleSignIn)).
		Methods("POST", "OPTIONS").Name("signin")
	r.HandleFunc("/auth/signout", func(w http.ResponseWriter, r *http.Request) {
		s.viewRegistry.Remove(auth.TokenFromRequest(r))
		authHandler.HandleSignOut(w, r)
	}).Methods("POST", "OPTIONS").Name("signout")
	r.HandleFunc("/auth/state", authHandler.HandleState).Methods("GET", "OPTIONS").Name("auth-state")

	profileHandler := profile.NewHandler(s.profiles, s.generator, s.metricsManager)
	r.HandleFunc("/profile", profileHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/profile", profileHandler.HandleSave).Methods("PUT", "OPTIONS").Name("save-profile")
	r.Handle("/profile/generate", s.rateLimited("ai", s.config.AIRateLimitPerMin, profileHandler.HandleGenerate)).
		Methods("POST", "OPTIONS").Name("generate-plan")

	workoutHandler := workoutlog.NewHandler(s.workoutService)
	r.HandleFunc("/workouts", workoutHandler.HandleSave).Methods("POST", "OPTIONS").Name("save-workout")
	r.HandleFunc("/workouts", workoutHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")

	nutritionHandler := nutrition.NewHandler(s.nutritionService)
	r.HandleFunc("/nutrition", nutritionHandler.HandleAdd).Methods("POST", "OPTIONS").Name("add-nutrition")
	r.HandleFunc("/nutrition", nutritionHandler.HandleList).Methods("GET", "OPTIONS").Name("list-nutrition")
	r.HandleFunc("/nutrition/today", nutritionHandler.HandleToday).Methods("GET", "OPTIONS").Name("nutrition-today")
	r.HandleFunc("/nutrition/{id}", nutritionHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-nutrition")

	viewHandler := view.NewHandler(s.viewRegistry)
	r.HandleFunc("/app", viewHandler.HandleRender).Methods("GET", "OPTIONS").Name("render")
	r.HandleFunc("/app/screen/{screen}", viewHandler.HandleNavigate).Methods("PUT", "OPTIONS").Name("navigate")
	r.HandleFunc("/app/settings/draft", viewHandler.HandleSetDraft).Methods("PUT", "OPTIONS").Name("set-draft")
	r.HandleFunc("/app/settings/save", viewHandler.HandleSaveDraft).Methods("POST", "OPTIONS").Name("save-draft")
	r.Handle("/app/settings/generate", s.rateLimited("ai", s.config.AIRateLimitPerMin, viewHandler.HandleGenerate)).
		Methods("POST", "OPTIONS").Name("generate-draft")

	liveHandler := live.NewHandler(
		s.profiles,
		s.workoutRepo,
		s.nutritionRepo,
		s.config.AllowedOrigins,
		s.metricsManager,
	)
	r.HandleFunc("/live", liveHandler.HandleLive).Methods("GET").Name("live")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.authService)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

// rateLimited wraps the handler with the redis rate limiter. Without redis
// (memory store) there is nothing to share limits through, so it is a no-op.
func (s *Server) rateLimited(name string, perMin int, handler http.HandlerFunc) http.Handler {
	if s.rateLimiter == nil || perMin <= 0 {
		return handler
	}
	return middleware.RateLimit(s.rateLimiter, name, perMin, s.metricsManager)(handler)
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	// plan generation alone may take up to the gemini timeout
	writeTimeout := time.Minute
	if genTimeout := s.config.GeminiTimeout() + 15*time.Second; genTimeout > writeTimeout {
		writeTimeout = genTimeout
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: writeTimeout,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	if s.config.PrometheusMetricsPort != "" {
		go func() {
			log.Debugf(" > metrics listening on: [%s]", metricsAddr)
			err := s.metricsHttpServer.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("metrics service, listen and serve: %s", err)
			}
		}()
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if s.sessionsCleanup != nil {
		<-s.sessionsCleanup.Stop().Done()
	}

	s.viewRegistry.CloseAll()
	if s.stopWatches != nil {
		s.stopWatches()
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	s.closeBackends()

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) closeBackends() {
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed, http.StateHijacked:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
