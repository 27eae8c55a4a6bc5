package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/internforge/backend/handlers"
	"github.com/internforge/backend/internal/agent"
	"github.com/internforge/backend/internal/config"
	"github.com/internforge/backend/internal/database"
	"github.com/internforge/backend/internal/internships"
	"github.com/internforge/backend/internal/locks"
	"github.com/internforge/backend/internal/sessions"
	"github.com/internforge/backend/internal/storage"
	"github.com/internforge/backend/internal/submissions"
	"github.com/internforge/backend/internal/tokens"
	"github.com/internforge/backend/internal/users"
	"github.com/internforge/backend/pkg/logger"
	"github.com/internforge/backend/pkg/metrics"
	"github.com/internforge/backend/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

var startTime = time.Now()

// repositories groups the persistence layer, Mongo-backed or in memory.
type repositories struct {
	users       users.UserRepository
	skills      users.SkillRepository
	internships internships.InternshipRepository
	weeks       internships.WeekRepository
	tasks       internships.TaskRepository
	submissions submissions.SubmissionRepository
	feedback    submissions.FeedbackRepository
}

func mongoRepositories(db *mongo.Database) repositories {
	return repositories{
		users:       users.NewMongoUserRepository(db.Collection(database.UsersCollection)),
		skills:      users.NewMongoSkillRepository(db.Collection(database.SkillsCollection)),
		internships: internships.NewMongoInternshipRepository(db.Collection(database.InternshipsCollection)),
		weeks:       internships.NewMongoWeekRepository(db.Collection(database.WeeklyPlansCollection)),
		tasks:       internships.NewMongoTaskRepository(db.Collection(database.TasksCollection)),
		submissions: submissions.NewMongoSubmissionRepository(db.Collection(database.SubmissionsCollection)),
		feedback:    submissions.NewMongoFeedbackRepository(db.Collection(database.FeedbackCollection)),
	}
}

func memoryRepositories() repositories {
	store := internships.NewMemoryStore()
	return repositories{
		users:       users.NewMemoryUserRepository(),
		skills:      users.NewMemorySkillRepository(),
		internships: store.Internships(),
		weeks:       store.Weeks(),
		tasks:       store.Tasks(),
		submissions: submissions.NewMemorySubmissionRepository(),
		feedback:    submissions.NewMemoryFeedbackRepository(),
	}
}

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Infof("config loaded: mongo=%v redis=%v minio=%v rate_limit=%v", cfg.MongoDB.URI != "", cfg.Redis.Enabled(), cfg.MinIO.Enabled(), cfg.RateLimit.Enabled)

	ctx := context.Background()
	checks := map[string]handlers.ReadinessCheck{}

	// Redis backs the plan lock, token revocation and the shared rate limiter.
	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis ping failed (%s): %v", cfg.Redis.Addr(), err)
		} else {
			logger.Infof("connected to redis at %s", cfg.Redis.Addr())
		}
		defer func() { _ = rdb.Close() }()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	var (
		locker  locks.Locker     = locks.NewMemoryLocker()
		revoker sessions.Revoker = sessions.NewMemoryRevoker()
	)
	if rdb != nil {
		locker = locks.NewRedisLocker(rdb, "lock:")
		revoker = sessions.NewRedisRevoker(rdb)
	}

	var repos repositories
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5, time.Second)
		if err != nil {
			logger.Fatalf("could not connect to MongoDB: %v", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		db := client.Database(cfg.MongoDB.Database)
		names, err := database.EnsureIndexes(ctx, db)
		if err != nil {
			logger.Fatalf("failed to ensure indexes: %v", err)
		}
		logger.Debugf("indexes ensured: %v", names)
		repos = mongoRepositories(db)
		checks["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		logger.Infof("using MongoDB database %q", cfg.MongoDB.Database)
	} else {
		logger.Warnf("MONGODB_URI not set: using in-memory stores, data is lost on restart")
		repos = memoryRepositories()
	}

	var archive storage.Archiver = storage.NopArchiver{}
	if cfg.MinIO.Enabled() {
		st, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("minio unavailable, model outputs will not be archived: %v", err)
		} else {
			archive = storage.NewMinIOArchiver(st)
			checks["minio"] = st.Ping
		}
	}

	planAgent, err := agent.New(agentConfig(cfg.LLM, agent.PlannerName, agent.PlannerSystemPrompt))
	if err != nil {
		logger.Fatalf("planner agent: %v", err)
	}
	feedbackAgent, err := agent.New(agentConfig(cfg.LLM, agent.FeedbackName, agent.FeedbackSystemPrompt))
	if err != nil {
		logger.Fatalf("feedback agent: %v", err)
	}

	issuer, err := tokens.NewIssuer(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)
	if err != nil {
		logger.Fatalf("token issuer: %v", err)
	}

	userSvc := users.NewService(repos.users)
	skillSvc := users.NewSkillService(repos.skills)
	internshipSvc := internships.NewService(repos.internships, repos.weeks, repos.tasks)
	planner := internships.NewPlanner(planAgent, locker, archive, repos.internships, repos.weeks, repos.tasks, internships.PlannerOptions{
		LockTTL:      cfg.LLM.Timeout + time.Minute,
		WriteTimeout: 30 * time.Second,
	})
	submissionSvc := submissions.NewService(repos.submissions, repos.feedback, internshipSvc, feedbackAgent, archive)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS(cfg.CORS.AllowedOrigins))

	handlers.RegisterHealth(r, startTime, checks)
	handlers.RegisterSwagger(r)
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.AuthMiddleware(issuer, revoker)
	public := r.Group("/")
	protected := r.Group("/", requireAuth)
	if cfg.RateLimit.Enabled {
		limit := rateLimiter(cfg.RateLimit, rdb)
		public.Use(limit)
		protected.Use(limit)
	}

	handlers.NewAuthHandler(userSvc, issuer, revoker).Register(public, requireAuth)
	handlers.NewUserHandler(userSvc, skillSvc).Register(protected)
	handlers.NewInternshipHandler(planner, internshipSvc).Register(protected)
	handlers.NewSubmissionHandler(submissionSvc).Register(protected)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("starting internforge api on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}

func agentConfig(llm config.LLMConfig, name, system string) agent.Config {
	return agent.Config{
		Name:         name,
		Model:        llm.Model,
		SystemPrompt: system,
		Endpoint:     llm.Endpoint,
		APIKey:       llm.APIKey,
		Temperature:  &llm.Temperature,
		Timeout:      llm.Timeout,
	}
}

// rateLimiter prefers the Redis limiter so replicas share counters.
func rateLimiter(rl config.RateLimitConfig, rdb *redis.Client) gin.HandlerFunc {
	if rl.UseRedis && rdb != nil {
		return middleware.RedisRateLimitMiddleware(rdb, rl.RPS, rl.Burst, time.Duration(rl.WindowSeconds)*time.Second)
	}
	return middleware.RateLimitMiddleware(rl.RPS, rl.Burst)
}
