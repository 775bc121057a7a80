// Package server assembles the application: storage, services,
// handlers and the HTTP router.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"leadsdesk/internal/auth"
	"leadsdesk/internal/config"
	"leadsdesk/internal/errs"
	"leadsdesk/internal/handler"
	"leadsdesk/internal/limiter"
	"leadsdesk/internal/mailer"
	"leadsdesk/internal/model"
	"leadsdesk/internal/obs"
	"leadsdesk/internal/repository"
	"leadsdesk/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Server is the assembled HTTP application.
type Server struct {
	cfg    *config.Config
	log    *zap.Logger
	mongo  *mongo.Client
	router *gin.Engine
}

// Repositories groups the persistence layer.
type Repositories struct {
	Users    repository.IUserRepository
	Leads    repository.ILeadRepository
	Projects repository.IProjectRepository
	Payments repository.IPaymentRepository
	Invoices repository.IInvoiceRepository
}

// Services groups the application services.
type Services struct {
	Auth      *service.AuthService
	CSR       *service.CSRService
	Leads     *service.LeadService
	Projects  *service.ProjectService
	Payments  *service.PaymentService
	Invoices  *service.InvoiceService
	Dashboard *service.DashboardService
}

// Handlers groups the HTTP handlers.
type Handlers struct {
	Auth      *handler.AuthHandler
	Admin     *handler.AdminHandler
	Leads     *handler.LeadHandler
	Projects  *handler.ProjectHandler
	Payments  *handler.PaymentHandler
	Invoices  *handler.InvoiceHandler
	Dashboard *handler.DashboardHandler
}

// New connects storage, wires the layers and builds the router.
func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	tokens, err := auth.NewTokenIssuer([]byte(cfg.Auth.JWTSecret), cfg.Auth.SessionTTL)
	if err != nil {
		return nil, err
	}

	mongoClient, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	repos := InitRepositories(db)
	if err := repos.Users.EnsureIndexes(context.Background()); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	services := InitServices(cfg, log, repos, tokens)
	handlers := InitHandlers(services)

	if err := SeedAdmin(context.Background(), cfg, repos.Users, log); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	obs.InitMetrics()
	router := setupRouter(cfg, log, handlers, tokens, repos.Users)

	return &Server{
		cfg:    cfg,
		log:    log,
		mongo:  mongoClient,
		router: router,
	}, nil
}

// Connect dials MongoDB and verifies the connection.
func Connect(cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// InitRepositories constructs the persistence layer over one database.
func InitRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:    repository.NewUserRepository(db),
		Leads:    repository.NewLeadRepository(db),
		Projects: repository.NewProjectRepository(db),
		Payments: repository.NewPaymentRepository(db),
		Invoices: repository.NewInvoiceRepository(db),
	}
}

// InitServices constructs the application services.
func InitServices(cfg *config.Config, log *zap.Logger, repos *Repositories, tokens *auth.TokenIssuer) *Services {
	var mail mailer.Mailer
	if cfg.SMTP.Host != "" {
		mail = mailer.NewSMTP(cfg.SMTP.Address(), cfg.SMTP.From, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Host)
	} else {
		mail = mailer.NewLog(log)
	}
	attempts := limiter.New(cfg.LoginRate.PerMinute, cfg.LoginRate.Burst)

	return &Services{
		Auth:      service.NewAuthService(repos.Users, tokens, mail, attempts, cfg.Auth.ResetTTL, cfg.FrontendURL),
		CSR:       service.NewCSRService(repos.Users),
		Leads:     service.NewLeadService(repos.Leads),
		Projects:  service.NewProjectService(repos.Projects),
		Payments:  service.NewPaymentService(repos.Payments, repos.Projects),
		Invoices:  service.NewInvoiceService(repos.Invoices, repos.Projects),
		Dashboard: service.NewDashboardService(repos.Users, repos.Leads, repos.Projects, repos.Payments, repos.Invoices),
	}
}

// InitHandlers constructs the HTTP handlers.
func InitHandlers(services *Services) *Handlers {
	return &Handlers{
		Auth:      handler.NewAuthHandler(services.Auth),
		Admin:     handler.NewAdminHandler(services.CSR),
		Leads:     handler.NewLeadHandler(services.Leads),
		Projects:  handler.NewProjectHandler(services.Projects),
		Payments:  handler.NewPaymentHandler(services.Payments),
		Invoices:  handler.NewInvoiceHandler(services.Invoices),
		Dashboard: handler.NewDashboardHandler(services.Dashboard),
	}
}

// SeedAdmin provisions the configured admin account when it does not
// exist yet. No-op when admin credentials are not configured.
func SeedAdmin(ctx context.Context, cfg *config.Config, users repository.IUserRepository, log *zap.Logger) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return nil
	}

	if _, err := users.FindByEmail(ctx, cfg.Admin.Email); err == nil {
		return nil
	} else if !errors.Is(err, errs.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}
	_, err = users.Create(ctx, &model.User{
		Name:         cfg.Admin.Name,
		Email:        cfg.Admin.Email,
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
		Permissions:  []auth.Permission{},
	})
	if err != nil {
		return err
	}
	log.Info("seeded admin account", zap.String("email", cfg.Admin.Email))
	return nil
}

// Close disconnects storage.
func (s *Server) Close() error {
	if s.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.mongo.Disconnect(ctx)
	}
	return nil
}

// Run starts serving on the configured address.
func (s *Server) Run() error {
	s.log.Info("server listening", zap.String("addr", s.cfg.Server.Address()))
	return s.router.Run(s.cfg.Server.Address())
}
