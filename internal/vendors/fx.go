package vendors

import (
	"github.com/deliverlylabs/deliverly/internal/vendors/repository"
	"github.com/deliverlylabs/deliverly/internal/vendors/service"
	"go.uber.org/fx"
)

var Module = fx.Module("vendor.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
