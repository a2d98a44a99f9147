package routes

import (
	"accounthub/api/handler"
	"accounthub/api/middleware"

	"github.com/labstack/echo/v4"
)

type Router struct {
	Echo           *echo.Echo
	Accounts       *handler.AccountHandler
	Roles          *handler.RoleHandler
	AuthMiddleware middleware.AuthMiddleware
}

func NewRouter(e *echo.Echo, accounts *handler.AccountHandler, roles *handler.RoleHandler, authMiddleware middleware.AuthMiddleware) *Router {
	return &Router{
		Echo:           e,
		Accounts:       accounts,
		Roles:          roles,
		AuthMiddleware: authMiddleware,
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo
	auth := r.AuthMiddleware.RequireAuth

	e.POST("/auth/register", r.Accounts.Register)
	e.POST("/auth/login", r.Accounts.Login)
	e.POST("/auth/oauth/login", r.Accounts.OauthLogin)
	e.POST("/auth/verification/request", r.Accounts.RequestVerification)
	e.POST("/auth/verification/confirm", r.Accounts.VerifyAccount)
	e.POST("/auth/password/forgot", r.Accounts.PasswordForgot)
	e.POST("/auth/password/reset", r.Accounts.PasswordReset)

	e.GET("/me", r.Accounts.Me, auth)
	e.GET("/accounts/:id", r.Accounts.GetProfile, auth)
	e.POST("/accounts/:id/roles/:roleId", r.Accounts.AssignRole, auth)
	e.DELETE("/accounts/:id/roles/:roleId", r.Accounts.UnassignRole, auth)

	e.GET("/roles", r.Roles.List, auth)
	e.POST("/roles", r.Roles.Create, auth)
	e.PUT("/roles/:id", r.Roles.Update, auth)
	e.DELETE("/roles/:id", r.Roles.Delete, auth)
	e.GET("/permissions", r.Roles.ListPermissions, auth)
}
