// Package server exposes the HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	areadomain "github.com/deliverlylabs/deliverly/internal/area/domain"
	"github.com/deliverlylabs/deliverly/internal/config"
	customerdomain "github.com/deliverlylabs/deliverly/internal/customer/domain"
	invitedomain "github.com/deliverlylabs/deliverly/internal/invite/domain"
	orderdomain "github.com/deliverlylabs/deliverly/internal/order/domain"
	ordergendomain "github.com/deliverlylabs/deliverly/internal/ordergen/domain"
	productdomain "github.com/deliverlylabs/deliverly/internal/product/domain"
	smsdomain "github.com/deliverlylabs/deliverly/internal/sms/domain"
	subscriptiondomain "github.com/deliverlylabs/deliverly/internal/subscription/domain"
	vendordomain "github.com/deliverlylabs/deliverly/internal/vendors/domain"
)

type Server struct {
	cfg config.Config
	log *zap.Logger
	db  *gorm.DB

	areaSvc         areadomain.Service
	vendorSvc       vendordomain.Service
	customerSvc     customerdomain.Service
	productSvc      productdomain.Service
	subscriptionSvc subscriptiondomain.Service
	orderSvc        orderdomain.Service
	ordergenSvc     ordergendomain.Service
	inviteSvc       invitedomain.Service
	smsSvc          smsdomain.Service
}

type ServerParam struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
	DB     *gorm.DB

	AreaSvc         areadomain.Service
	VendorSvc       vendordomain.Service
	CustomerSvc     customerdomain.Service
	ProductSvc      productdomain.Service
	SubscriptionSvc subscriptiondomain.Service
	OrderSvc        orderdomain.Service
	OrdergenSvc     ordergendomain.Service
	InviteSvc       invitedomain.Service
	SMSSvc          smsdomain.Service
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:             p.Config,
		log:             p.Log.Named("server"),
		db:              p.DB,
		areaSvc:         p.AreaSvc,
		vendorSvc:       p.VendorSvc,
		customerSvc:     p.CustomerSvc,
		productSvc:      p.ProductSvc,
		subscriptionSvc: p.SubscriptionSvc,
		orderSvc:        p.OrderSvc,
		ordergenSvc:     p.OrdergenSvc,
		inviteSvc:       p.InviteSvc,
		smsSvc:          p.SMSSvc,
	}
}

func (s *Server) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", s.Healthz)
	router.GET("/readyz", s.Readyz)
	router.GET("/metrics", s.Metrics())

	v1 := router.Group("/v1")

	v1.POST("/areas", s.CreateArea)
	v1.GET("/areas", s.ListAreas)
	v1.POST("/areas/:id/societies", s.CreateSociety)
	v1.GET("/areas/:id/societies", s.ListSocieties)

	v1.POST("/vendors", s.CreateVendor)
	v1.GET("/vendors", s.ListVendors)
	v1.GET("/vendors/:id", s.GetVendorByID)
	v1.GET("/vendors/slug/:slug", s.GetVendorBySlug)
	v1.GET("/vendors/:id/customers", s.ListVendorCustomers)
	v1.GET("/vendors/:id/products", s.ListVendorProducts)
	v1.POST("/vendors/:id/invites", s.IssueInvite)

	v1.POST("/customers", s.CreateCustomer)
	v1.GET("/customers/:id", s.GetCustomerByID)

	v1.POST("/products", s.CreateProduct)
	v1.GET("/products/:id", s.GetProductByID)
	v1.PATCH("/products/:id", s.UpdateProduct)

	v1.POST("/subscriptions", s.CreateSubscription)
	v1.GET("/subscriptions", s.ListSubscriptions)
	v1.GET("/subscriptions/:id", s.GetSubscriptionByID)
	v1.POST("/subscriptions/:id/pause", s.PauseSubscription)
	v1.POST("/subscriptions/:id/resume", s.ResumeSubscription)
	v1.POST("/subscriptions/:id/cancel", s.CancelSubscription)
	v1.PUT("/subscriptions/:id/pause-window", s.SetPauseWindow)
	v1.DELETE("/subscriptions/:id/pause-window", s.ClearPauseWindow)

	v1.GET("/orders", s.ListOrders)
	v1.GET("/orders/:id", s.GetOrderByID)
	v1.PATCH("/orders/:id/status", s.UpdateOrderStatus)

	v1.POST("/invites/redeem", s.RedeemInvite)

	jobs := v1.Group("/jobs", s.JobTokenRequired())
	jobs.POST("/generate-orders", s.GenerateOrders)

	sms := v1.Group("/sms", s.SMSKeyRequired())
	sms.POST("/send", s.SendSMS)
}

// RunHTTP starts the HTTP listener tied to the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, s *Server, log *zap.Logger) {
	router := gin.New()
	router.Use(gin.Recovery())
	s.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", httpServer.Addr))
			go func() {
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return httpServer.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(NewServer),
	fx.Invoke(RunHTTP),
)
