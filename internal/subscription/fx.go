package subscription

import (
	"github.com/deliverlylabs/deliverly/internal/subscription/repository"
	"github.com/deliverlylabs/deliverly/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
