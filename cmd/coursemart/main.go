package main

import (
	"context"
	"log/slog"
	"os"

	"coursemart/config"
	"coursemart/internal/delivery"
	"coursemart/internal/delivery/api"
	apimiddleware "coursemart/internal/delivery/api/middleware"
	"coursemart/internal/delivery/api/router/handler"
	"coursemart/internal/delivery/middleware"
	"coursemart/internal/infra/auth"
	"coursemart/internal/infra/auth/google"
	"coursemart/internal/infra/email"
	logs "coursemart/internal/infra/log"
	"coursemart/internal/infra/persistence/postgres"
	"coursemart/internal/infra/persistence/redis"
	"coursemart/internal/infra/pubsub"
	"coursemart/internal/infra/qrcode"
	"coursemart/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		redis.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAccountRepository,
			postgres.NewSessionTokenRepository,
			postgres.NewOrderRepository,
			postgres.NewTransactionManager,
			redis.NewPendingAccountRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			google.NewOAuthService,
			email.NewSender,
			pubsub.NewEventPublisher,
			qrcode.New,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewRegistrationService,
			impl.NewAuthService,
			impl.NewFederatedLoginService,
			impl.NewCheckoutService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewAuthMiddleware,
			apimiddleware.NewErrorMiddleware,
			middleware.NewRateLimiter,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewCheckoutHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
