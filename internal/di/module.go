package di

import (
	"github.com/voltride/paygate/internal/adapter/gateway"
	"github.com/voltride/paygate/internal/app"
	"github.com/voltride/paygate/internal/config"
	"github.com/voltride/paygate/internal/logger"
	"github.com/voltride/paygate/internal/pkg/signature"
	"github.com/voltride/paygate/internal/server/http/handlers"
	"github.com/voltride/paygate/internal/server/http/router"
	"github.com/voltride/paygate/internal/storage/postgres"
	"github.com/voltride/paygate/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		signature.Module,
		postgres.Module,
		gateway.Module,
		usecase.Module,
		fx.Provide(func(client gateway.Client) app.GatewayVerifier { return client }),
		fx.Provide(func(f *app.Facade) handlers.StorefrontFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
