package customer

import (
	"github.com/deliverlylabs/deliverly/internal/customer/repository"
	"github.com/deliverlylabs/deliverly/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
