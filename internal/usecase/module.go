package usecase

import (
	"go.uber.org/fx"

	"github.com/voltride/paygate/internal/config"
	"github.com/voltride/paygate/internal/domain/repository"
	"github.com/voltride/paygate/internal/pkg/signature"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewOrderUseCase,
	newPaymentUseCase,
)

type paymentParams struct {
	fx.In

	Signer *signature.Signer
	Orders repository.OrderRepository
	Config *config.Config
}

func newPaymentUseCase(p paymentParams) *PaymentUseCase {
	return NewPaymentUseCase(p.Signer, p.Orders, p.Config.GatewayPaymentURL, p.Config.StoreTimeout)
}
