// Package guestlist собирает приложение: хранилище, кеш, очередь уведомлений,
// маршруты и HTTP-сервер с корректным завершением.
package guestlist

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	// Регистрация драйвера pgx для запуска миграций через database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/guestlist-backend/internal/cache"
	"github.com/magabrotheeeer/guestlist-backend/internal/config"
	jwtlib "github.com/magabrotheeeer/guestlist-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/guestlist-backend/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/guestlist-backend/internal/migrations"
	authservice "github.com/magabrotheeeer/guestlist-backend/internal/services/auth"
	guestservice "github.com/magabrotheeeer/guestlist-backend/internal/services/guest"
	"github.com/magabrotheeeer/guestlist-backend/internal/storage/repository"
)

// App связывает все зависимости приложения и владеет их жизненным циклом.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	mq     *amqp.Connection
}

// New инициализирует зависимости приложения и возвращает готовый к запуску App.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if err := runMigrations(cfg.StorageConnectionString); err != nil {
		return nil, err
	}

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err := repository.CheckDatabaseReady(ctx, db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQConnection, 5, 3*time.Second)
	if err != nil {
		return nil, err
	}
	mqChannel, err := rabbitmq.SetupChannel(mqConn)
	if err != nil {
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(mqChannel)

	jwtMaker := jwtlib.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	guestService := guestservice.NewGuestService(db, cacheRedis, publisher, logger)
	authService := authservice.NewAuthService(db, jwtMaker)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, jwtMaker, guestService, authService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		mq:     mqConn,
	}, nil
}

// runMigrations применяет миграции через временное подключение database/sql:
// драйвер golang-migrate работает поверх *sql.DB.
func runMigrations(connectionString string) error {
	db, err := sql.Open("pgx", connectionString)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()
	return migrations.Run(db, "./migrations")
}

// Run запускает HTTP-сервер и блокируется до отмены контекста или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.Close()
		_ = a.cache.Db.Close()
		_ = a.mq.Close()
		return err
	}
}
