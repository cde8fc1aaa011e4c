package product

import (
	"github.com/deliverlylabs/deliverly/internal/product/repository"
	"github.com/deliverlylabs/deliverly/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
