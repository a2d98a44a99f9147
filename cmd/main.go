package main

import (
	"net/http"
	"os"
	"time"

	"accounthub/api/handler"
	apiMiddleware "accounthub/api/middleware"
	"accounthub/api/routes"
	"accounthub/config"
	"accounthub/internal/repository"
	"accounthub/internal/service"
	"accounthub/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	db := config.ConnectionDb(cfg.DatabaseURL)
	validate := validator.New()

	accessManager := utils.JWTManager{
		Secret:         []byte(cfg.JWTSecret),
		Issuer:         cfg.JWTIssuer,
		AccessTokenTTL: cfg.AccessTokenTTL,
	}

	accountRepo := repository.NewAccountRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	verificationRepo := repository.NewVerificationTokenRepository(db)
	resetRepo := repository.NewResetPasswordTokenRepository(db)
	txRunner := repository.GormTxRunner{DB: db}

	passwordHasher := service.BcryptPasswordHasher{}
	tokenSource := service.CryptoTokenSource{}
	clock := service.RealClock{}

	accountService := service.NewAccountService(accountRepo, roleRepo, passwordHasher, clock)
	tokenService := service.NewTokenService(accountRepo, verificationRepo, resetRepo, passwordHasher, tokenSource, clock, txRunner)
	roleService := service.NewRoleService(roleRepo, permissionRepo, accountRepo)

	notifier := service.TokenNotifier{
		Email: service.NewResendEmailSender(cfg.ResendAPIKey, cfg.MailFrom),
		SMS:   service.NewTwilioSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom),
	}
	accessIssuer := service.JWTAccessIssuer{Manager: &accessManager}

	accountHandler := handler.NewAccountHandler(accountService, tokenService, accessIssuer, notifier, validate)
	roleHandler := handler.NewRoleHandler(roleService, validate)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &accessManager, Accounts: accountRepo}
	router := routes.NewRouter(app, accountHandler, roleHandler, authMiddleware)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
