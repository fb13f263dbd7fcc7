// Command api runs the Dealkit HTTP API: coupons, stores, cashback, accounts,
// editorial content and analytics behind a single chi router.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/dealkit/dealkit/modules/account"
	"github.com/dealkit/dealkit/modules/analytics"
	"github.com/dealkit/dealkit/modules/cashback"
	"github.com/dealkit/dealkit/modules/content"
	"github.com/dealkit/dealkit/modules/coupon"
	"github.com/dealkit/dealkit/modules/store"
	"github.com/dealkit/dealkit/pkg/cache"
	"github.com/dealkit/dealkit/pkg/config"
	"github.com/dealkit/dealkit/pkg/email"
	"github.com/dealkit/dealkit/pkg/httpserver"
	"github.com/dealkit/dealkit/pkg/logger"
	"github.com/dealkit/dealkit/pkg/metrics"
	"github.com/dealkit/dealkit/pkg/mongo"
	"github.com/dealkit/dealkit/pkg/queue"
	"github.com/dealkit/dealkit/pkg/ratelimit"
	"github.com/dealkit/dealkit/pkg/redis"
	"github.com/dealkit/dealkit/pkg/requestid"
	"github.com/dealkit/dealkit/rulesets"
)

type appConfig struct {
	Env           string     `env:"APP_ENV" envDefault:"development"`
	LogLevel      slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	RedeemBaseURL string     `env:"COUPON_REDEEM_BASE_URL" envDefault:"https://dealkit.app/redeem"`
}

func main() {
	var (
		appCfg    appConfig
		serverCfg httpserver.Config
		mongoCfg  mongo.Config
		redisCfg  redis.Config
		limitCfg  ratelimit.Config
		emailCfg  email.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&serverCfg)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&limitCfg)
	config.MustLoad(&emailCfg)

	log := logger.New(
		logger.WithLevel(appCfg.LogLevel),
		logger.WithAttrs(slog.String("env", appCfg.Env)),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := mongo.ConnectDatabase(ctx, mongoCfg)
	if err != nil {
		log.Error("failed to connect to mongodb", logger.Error(err))
		os.Exit(1)
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	rdb, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		log.Error("failed to connect to redis", logger.Error(err))
		os.Exit(1)
	}
	defer func() { _ = rdb.Close() }()

	var mailer email.Sender
	if emailCfg.PostmarkServerToken != "" {
		mailer, err = email.NewPostmarkSender(emailCfg)
		if err != nil {
			log.Error("failed to configure postmark", logger.Error(err))
			os.Exit(1)
		}
	} else {
		log.Warn("postmark token not set, emails are logged only")
		mailer = email.NewDevSender(log)
	}

	appCache := cache.NewRedisCache(rdb, "dealkit")
	limiter := ratelimit.New(ratelimit.NewRedisStore(rdb, "dealkit:ratelimit"), limitCfg)

	eventRepo := analytics.NewEventRepository(db)
	counters := analytics.NewMongoCounterStore(db)
	enqueuer := queue.NewEnqueuer(eventRepo)

	worker, err := queue.NewWorker(eventRepo, log, []queue.Handler{
		analytics.NewCouponViewedHandler(counters),
		analytics.NewCouponRedeemedHandler(counters),
		analytics.NewCashbackTrackedHandler(counters),
	})
	if err != nil {
		log.Error("failed to configure queue worker", logger.Error(err))
		os.Exit(1)
	}

	registry := rulesets.MustNewRegistry()

	couponSvc := coupon.NewService(coupon.NewMongoRepository(db), appCache, enqueuer, log, appCfg.RedeemBaseURL)
	storeSvc := store.NewService(store.NewMongoRepository(db), appCache, couponSvc, log)
	cashbackSvc := cashback.NewService(cashback.NewMongoRepository(db), mailer, enqueuer, log)
	accountSvc := account.NewService(account.NewMongoRepository(db), mailer, log)
	contentSvc := content.NewService(content.NewMongoRepository(db), storeSvc, log)

	m := metrics.New("dealkit")

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(m.Middleware)
	r.Use(ratelimit.Middleware(limiter, ratelimit.KeyByIP, log))

	r.Route("/v1", func(r chi.Router) {
		r.Mount("/coupons", coupon.Router(couponSvc, registry))
		r.Mount("/stores", store.Router(storeSvc, registry))
		r.Mount("/cashback", cashback.Router(cashbackSvc, registry))
		r.Mount("/account", account.Router(accountSvc, registry, rulesets.ProfileSchema()))
		r.Mount("/", content.Router(contentSvc, registry))
		r.Mount("/analytics", analytics.Router(counters))
	})

	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/health", httpserver.HealthCheckHandler(ctx, log,
		mongo.Healthcheck(db.Client()),
		redis.Healthcheck(rdb),
	))

	go func() {
		if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("queue worker stopped", logger.Error(err))
		}
	}()

	srv := httpserver.New(serverCfg, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.Error("http server failed", logger.Error(err))
		os.Exit(1)
	}
}
