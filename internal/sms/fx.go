package sms

import (
	"github.com/deliverlylabs/deliverly/internal/sms/service"
	"go.uber.org/fx"
)

var Module = fx.Module("sms.service",
	fx.Provide(service.NewProvider),
	fx.Provide(service.NewService),
)
