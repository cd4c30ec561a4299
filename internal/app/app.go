package app

import (
	"context"
	"log"
	"log/slog"

	"github.com/humanbelnik/cinetally/internal/config"
	http_auth "github.com/humanbelnik/cinetally/internal/delivery/http/auth"
	http_catalog "github.com/humanbelnik/cinetally/internal/delivery/http/catalog"
	http_init "github.com/humanbelnik/cinetally/internal/delivery/http/init"
	http_auth_middleware "github.com/humanbelnik/cinetally/internal/delivery/http/middleware/auth"
	http_rating "github.com/humanbelnik/cinetally/internal/delivery/http/rating"
	http_swagger "github.com/humanbelnik/cinetally/internal/delivery/http/swagger"
	ws_feed "github.com/humanbelnik/cinetally/internal/delivery/ws/feed"
	infra_pg_init "github.com/humanbelnik/cinetally/internal/infra/postgres/init"
	infra_postgres_catalog "github.com/humanbelnik/cinetally/internal/infra/postgres/catalog"
	infra_poster "github.com/humanbelnik/cinetally/internal/infra/poster"
	infra_redis_init "github.com/humanbelnik/cinetally/internal/infra/redis/init"
	infra_session_cache "github.com/humanbelnik/cinetally/internal/infra/redis/session"
	session_auth "github.com/humanbelnik/cinetally/internal/service/auth/session"
	usecase_catalog "github.com/humanbelnik/cinetally/internal/usecase/catalog"
	usecase_sync "github.com/humanbelnik/cinetally/internal/usecase/sync"
)

func Go(cfg *config.Config) {
	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)

	store := infra_postgres_catalog.New(pgConn, infra_pg_init.BuildDSN(cfg.Postgres))
	if err := store.Bootstrap(context.Background()); err != nil {
		log.Fatalf("failed to bootstrap catalog schema: %v", err)
	}

	posterClient := infra_poster.New(cfg.Poster)

	collection := usecase_sync.New(store, posterClient)
	catalogUC := usecase_catalog.New(store, collection)

	sessionCache := infra_session_cache.New(redisConn, "session_cache")
	authService := session_auth.New(sessionCache, cfg.Session.TTL)
	authMiddleware := http_auth_middleware.New(authService)

	hub := ws_feed.NewHub(slog.Default())
	if err := collection.Start(hub.BroadcastEntries); err != nil {
		log.Fatalf("failed to start collection sync: %v", err)
	}
	defer collection.Stop()

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_swagger.New())
	controllerPool.Add(http_auth.New(authService))
	controllerPool.Add(http_catalog.New(catalogUC, collection, authMiddleware))
	controllerPool.Add(http_rating.New(catalogUC, authMiddleware))
	controllerPool.Add(ws_feed.NewController(hub))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
