package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/deliverlylabs/deliverly/internal/config"
	"github.com/deliverlylabs/deliverly/internal/sms/domain"
	"github.com/deliverlylabs/deliverly/internal/sms/provider/msg91"
	"github.com/deliverlylabs/deliverly/internal/sms/provider/twilio"
)

type Service struct {
	log      *zap.Logger
	provider domain.Provider
}

type ServiceParam struct {
	fx.In

	Log      *zap.Logger
	Provider domain.Provider
}

// NewProvider selects the gateway adapter named in configuration.
func NewProvider(cfg config.Config) (domain.Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.SMS.Provider)) {
	case "twilio":
		return twilio.New(cfg.SMS), nil
	case "msg91":
		return msg91.New(cfg.SMS), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, cfg.SMS.Provider)
	}
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:      p.Log.Named("sms.service"),
		provider: p.Provider,
	}
}

func (s *Service) Send(ctx context.Context, message domain.Message) error {
	message.To = strings.TrimSpace(message.To)
	message.Body = strings.TrimSpace(message.Body)
	if message.To == "" {
		return domain.ErrInvalidRecipient
	}
	if message.Body == "" {
		return domain.ErrInvalidBody
	}

	if err := s.provider.Send(ctx, message); err != nil {
		s.log.Warn("sms send failed",
			zap.String("provider", s.provider.Name()),
			zap.Error(err),
		)
		return err
	}

	s.log.Info("sms sent", zap.String("provider", s.provider.Name()))
	return nil
}
