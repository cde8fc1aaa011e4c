package order

import (
	"github.com/deliverlylabs/deliverly/internal/order/repository"
	"github.com/deliverlylabs/deliverly/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
