package area

import (
	"github.com/deliverlylabs/deliverly/internal/area/repository"
	"github.com/deliverlylabs/deliverly/internal/area/service"
	"go.uber.org/fx"
)

var Module = fx.Module("area.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
