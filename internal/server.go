package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/workoutcal/internal/api"
	"github.com/2beens/workoutcal/internal/auth"
	"github.com/2beens/workoutcal/internal/bodyparams"
	"github.com/2beens/workoutcal/internal/config"
	"github.com/2beens/workoutcal/internal/db"
	"github.com/2beens/workoutcal/internal/events"
	"github.com/2beens/workoutcal/internal/gateway"
	"github.com/2beens/workoutcal/internal/gateway/postgres"
	"github.com/2beens/workoutcal/internal/gateway/redisprofile"
	"github.com/2beens/workoutcal/internal/gateway/sqlite"
	workoutcalmcp "github.com/2beens/workoutcal/internal/mcp"
	"github.com/2beens/workoutcal/internal/middleware"
	"github.com/2beens/workoutcal/internal/session"
	"github.com/2beens/workoutcal/internal/telemetry/metrics"
	"github.com/2beens/workoutcal/internal/telemetry/tracing"
	"github.com/2beens/workoutcal/internal/workout"
	"github.com/2beens/workoutcal/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	sqliteStore *sqlite.Store
	redisClient *redis.Client

	sessions    *session.Registry
	checker     auth.Checker
	authService *auth.Service
	stopCleanup context.CancelFunc

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config      *config.Config
	VersionInfo string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	cleanupInterval, err := time.ParseDuration(cfg.SessionCleanupInterval)
	if err != nil {
		return nil, fmt.Errorf("parse session cleanup interval: %w", err)
	}

	s := &Server{
		config:      cfg,
		versionInfo: params.VersionInfo,
	}

	var collectors []prometheus.Collector
	if usesBackend(cfg, config.BackendPostgres) {
		dbParams := db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         cfg.PostgresUser,
			DBPassword:     cfg.PostgresPassword,
			TracingEnabled: cfg.HoneycombEnabled,
		}
		s.dbPool, err = db.NewDBPool(ctx, dbParams)
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := s.dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		if err := db.RunMigrations(db.ConnString(dbParams)); err != nil {
			s.dbPool.Close()
			return nil, fmt.Errorf("db migrations: %w", err)
		}
		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			s.dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}

	if usesBackend(cfg, config.BackendSQLite) {
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if exists, err := pkg.PathExists(dir, true); err != nil || !exists {
				return nil, fmt.Errorf("sqlite dir %s not usable: exists %t, err: %v", dir, exists, err)
			}
		}
		s.sqliteStore, err = sqlite.Open(cfg.SQLitePath, workout.TableWorkouts)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
	}

	s.promRegistry = metrics.SetupPrometheus(collectors...)
	s.metricsManager = metrics.NewManager("workoutcal", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	s.redisClient = redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       0, // use default DB
	})
	rdbStatus := s.redisClient.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	s.otelShutdown, err = tracing.HoneycombSetup(cfg.HoneycombEnabled, "workoutcal", s.redisClient)
	if err != nil {
		return nil, err
	}

	var rowStore gateway.RowStore
	var profileStore gateway.ProfileStore
	switch cfg.GatewayBackend {
	case config.BackendPostgres:
		pgStore := postgres.NewStore(s.dbPool)
		rowStore, profileStore = pgStore, pgStore
	case config.BackendSQLite:
		rowStore, profileStore = s.sqliteStore, s.sqliteStore
	}
	if cfg.ProfileBackend == config.BackendRedis {
		profileStore = redisprofile.NewStore(s.redisClient)
	}
	instrumented := gateway.NewInstrumented(rowStore, profileStore, s.metricsManager)

	s.sessions = session.NewRegistry(session.NewRegistryParams{
		RowStore:       instrumented,
		ProfileStore:   instrumented,
		Definitions:    bodyparams.DefaultDefinitions(),
		ResultsCache:   events.NewResultsCache(cfg.ResultsCacheSizeBytes),
		MetricsManager: s.metricsManager,
	})

	if cfg.DevUserID != "" {
		log.Warnf("dev user [%s] enabled, auth tokens are not checked", cfg.DevUserID)
		s.checker = auth.NewStaticChecker(cfg.DevUserID)
	} else {
		s.checker = auth.NewSessionChecker(auth.DefaultTTL, s.redisClient)
	}

	s.authService = auth.NewService(auth.DefaultTTL, s.redisClient)
	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	s.stopCleanup = stopCleanup
	go s.sessionsCleanup(cleanupCtx, cleanupInterval)

	return s, nil
}

func usesBackend(cfg *config.Config, backend string) bool {
	return cfg.GatewayBackend == backend || cfg.ProfileBackend == backend
}

func (s *Server) sessionsCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.authService.ScanAndClean(ctx)
		}
	}
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("workoutcal-router"))

	identity := auth.ContextIdentity{}
	apiHandler := api.NewHandler(api.NewHandlerParams{
		Sessions:    s.sessions,
		Identity:    identity,
		Definitions: bodyparams.DefaultDefinitions(),
		VersionInfo: s.versionInfo,
	})
	apiHandler.SetupRoutes(
		r,
		redis_rate.NewLimiter(s.redisClient),
		s.metricsManager,
		s.config.RateLimitPerMinute,
	)

	var schemaRepo workoutcalmcp.SchemaRepo
	if s.dbPool != nil {
		schemaRepo = workoutcalmcp.NewPoolSchemaRepo(s.dbPool)
	}
	mcpHandler := workoutcalmcp.NewHTTPHandler(s.sessions, schemaRepo, identity)
	r.PathPrefix("/mcp").
		Handler(otelhttp.NewHandler(mcpHandler, "mcp")).
		Name("mcp")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.checker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.LimitAndDrainRequest(s.config.MaxRequestBodyBytes))

	return r
}

func (s *Server) Serve() {
	ipAndPort := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before the stores go away
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	s.stopCleanup()

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if err := s.redisClient.Close(); err != nil {
		log.Errorf("failed to close redis client conn: %s", err)
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if s.sqliteStore != nil {
		if err := s.sqliteStore.Close(); err != nil {
			log.Errorf("failed to close sqlite store: %s", err)
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
