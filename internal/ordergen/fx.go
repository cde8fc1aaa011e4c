package ordergen

import (
	"github.com/deliverlylabs/deliverly/internal/ordergen/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ordergen.service",
	fx.Provide(service.NewService),
)
