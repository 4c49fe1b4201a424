package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/centraldesk/saascore/modules/account"
	"github.com/centraldesk/saascore/modules/directory"
	"github.com/centraldesk/saascore/pkg/config"
	"github.com/centraldesk/saascore/pkg/httpserver"
	"github.com/centraldesk/saascore/pkg/jwt"
	"github.com/centraldesk/saascore/pkg/limits"
	"github.com/centraldesk/saascore/pkg/logger"
	"github.com/centraldesk/saascore/pkg/pg"
	"github.com/centraldesk/saascore/pkg/rbac"
	"github.com/centraldesk/saascore/pkg/redis"
	"github.com/centraldesk/saascore/pkg/requestid"
	"github.com/centraldesk/saascore/pkg/tenant"
)

type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"saascore"`

	JWTSigningKey string        `env:"JWT_SIGNING_KEY,required"`
	JWTIssuer     string        `env:"JWT_ISSUER" envDefault:"saascore"`
	JWTAccessTTL  time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`

	PlansPath      string        `env:"PLANS_PATH" envDefault:"config/plans.yaml"`
	TenantCacheTTL time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`
	ReservedKeys   []string      `env:"RESERVED_SUBDOMAINS" envDefault:"login,api,www"`
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		cfg     appConfig
		pgCfg   pg.Config
		rdbCfg  redis.Config
		httpCfg httpserver.Config
	)
	config.MustLoad(&cfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&rdbCfg)
	config.MustLoad(&httpCfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			tenant.LoggerExtractor(),
		),
	)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		log.Error("postgres connection failed", logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		log.Error("migrations failed", logger.Error(err))
		os.Exit(1)
	}

	rdb, err := redis.Connect(ctx, rdbCfg)
	if err != nil {
		log.Error("redis connection failed", logger.Error(err))
		os.Exit(1)
	}
	defer rdb.Close()

	tokens, err := jwt.New([]byte(cfg.JWTSigningKey), cfg.JWTIssuer, cfg.JWTAccessTTL)
	if err != nil {
		log.Error("token service init failed", logger.Error(err))
		os.Exit(1)
	}

	authorizer, err := rbac.NewAuthorizer(ctx, rbac.NewInMemRoleSource(rbac.SystemRoles()))
	if err != nil {
		log.Error("authorizer init failed", logger.Error(err))
		os.Exit(1)
	}

	tenants := directory.NewStore(pool)
	routingCache := directory.NewRedisCache(rdb, log)
	accounts := account.NewStore(pool)

	counters := limits.NewRegistry()
	counters.Register(limits.ResourceUsers, accounts.CountMembers)

	plans, err := limits.NewService(ctx, limits.NewYAMLSource(cfg.PlansPath), counters,
		func(ctx context.Context, tenantID uuid.UUID) (string, error) {
			t, err := tenants.Get(ctx, tenantID)
			if err != nil {
				return "", err
			}
			return t.PlanID, nil
		})
	if err != nil {
		log.Error("plan catalog load failed", logger.Error(err))
		os.Exit(1)
	}

	accountSvc := account.NewService(accounts, tokens, log)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(tenant.Middleware(tenants,
		tenant.WithCache(routingCache),
		tenant.WithCacheTTL(cfg.TenantCacheTTL),
		tenant.WithReservedKeys(cfg.ReservedKeys),
		tenant.WithSkipPaths([]string{"/health"}),
	))

	r.Get("/health", httpserver.HealthCheckHandler(ctx, log,
		pg.Healthcheck(pool), redis.Healthcheck(rdb)))
	r.Mount("/account", account.Router(accountSvc, tokens, authorizer))
	r.Mount("/admin", directory.Router(tenants, routingCache, plans, tokens, authorizer))
	r.Group(func(r chi.Router) {
		r.Use(jwt.Middleware(tokens))
		r.Use(tenant.RequireTenant(nil))
		r.Get("/usage", handleUsage(plans, log))
	})

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

// handleUsage reports quota consumption for the current tenant's plan.
func handleUsage(plans limits.Service, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenant.Require(r.Context())
		if err != nil {
			http.Error(w, "tenant required", http.StatusForbidden)
			return
		}

		usage, err := plans.GetAllUsage(r.Context(), tenantID)
		if err != nil {
			log.ErrorContext(r.Context(), "usage report failed", logger.Error(err))
			http.Error(w, "failed to compute usage", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(usage)
	}
}
