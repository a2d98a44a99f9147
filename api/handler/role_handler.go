package handler

import (
	"errors"
	"net/http"

	"accounthub/api/middleware"
	"accounthub/internal/dto"
	"accounthub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type RoleHandler struct {
	Roles    *service.RoleService
	Validate *validator.Validate
}

func NewRoleHandler(roles *service.RoleService, validate *validator.Validate) *RoleHandler {
	return &RoleHandler{Roles: roles, Validate: validate}
}

func (h *RoleHandler) List(c echo.Context) error {
	current, ok := middleware.AccountFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	roles, err := h.Roles.List(c.Request().Context(), current)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.RoleResponsesFromEntities(roles))
}

func (h *RoleHandler) Create(c echo.Context) error {
	current, ok := middleware.AccountFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.CreateRoleRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	permissionIDs, err := parsePermissionIDs(req.PermissionIDs)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	role, err := h.Roles.Add(c.Request().Context(), service.CreateRoleInput{
		Name:          req.Name,
		PermissionIDs: permissionIDs,
	}, current)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.RoleResponseFromEntity(role))
}

func (h *RoleHandler) Update(c echo.Context) error {
	current, ok := middleware.AccountFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	roleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid role id"))
	}
	var req dto.UpdateRoleRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	permissionIDs, err := parsePermissionIDs(req.PermissionIDs)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	role, err := h.Roles.Update(c.Request().Context(), roleID, service.UpdateRoleInput{
		Name:          req.Name,
		PermissionIDs: permissionIDs,
	}, current)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.RoleResponseFromEntity(role))
}

func (h *RoleHandler) Delete(c echo.Context) error {
	current, ok := middleware.AccountFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	roleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid role id"))
	}
	if err := h.Roles.Remove(c.Request().Context(), roleID, current); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RoleHandler) ListPermissions(c echo.Context) error {
	current, ok := middleware.AccountFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	permissions, err := h.Roles.ListPermissions(c.Request().Context(), current)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.PermissionResponsesFromEntities(permissions))
}

func parsePermissionIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, errors.New("invalid permission id")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
