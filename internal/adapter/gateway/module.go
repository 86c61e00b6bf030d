package gateway

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/voltride/paygate/internal/config"
	"github.com/voltride/paygate/internal/pkg/signature"
)

// Module exposes the gateway client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Signer *signature.Signer
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.GatewayInfoURL, p.Signer, p.Logger)
}
