package signature

import (
	"github.com/voltride/paygate/internal/config"
	"go.uber.org/fx"
)

// Module provides the transaction signer via fx.
var Module = fx.Provide(newSigner)

type signerParams struct {
	fx.In

	Config *config.Config
}

func newSigner(p signerParams) (*Signer, error) {
	return NewSigner(p.Config.MerchantKey, p.Config.MerchantSalt)
}
