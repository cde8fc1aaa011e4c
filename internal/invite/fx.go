package invite

import (
	"github.com/deliverlylabs/deliverly/internal/invite/repository"
	"github.com/deliverlylabs/deliverly/internal/invite/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invite.service",
	fx.Provide(repository.ProvideConnection),
	fx.Provide(service.NewService),
)
