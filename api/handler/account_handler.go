package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"accounthub/api/middleware"
	"accounthub/internal/dto"
	"accounthub/internal/entity"
	"accounthub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AccountHandler struct {
	Accounts *service.AccountService
	Tokens   *service.TokenService
	Issuer   service.AccessTokenIssuer
	Notifier service.TokenNotifier
	Validate *validator.Validate
}

func NewAccountHandler(
	accounts *service.AccountService,
	tokens *service.TokenService,
	issuer service.AccessTokenIssuer,
	notifier service.TokenNotifier,
	validate *validator.Validate,
) *AccountHandler {
	return &AccountHandler{
		Accounts: accounts,
		Tokens:   tokens,
		Issuer:   issuer,
		Notifier: notifier,
		Validate: validate,
	}
}

func (h *AccountHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Gender:          req.Gender,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}
	account, err := h.Accounts.Register(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.AccountResponseFromEntity(account))
}

func (h *AccountHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	account, err := h.Accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}
	return h.writeLoginResponse(c, account)
}

func (h *AccountHandler) OauthLogin(c echo.Context) error {
	var req dto.OauthLoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.OauthLoginInput{
		OauthID:       req.OauthID,
		OauthProvider: req.OauthProvider,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
	}
	account, err := h.Accounts.OauthLogin(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return h.writeLoginResponse(c, account)
}

// RequestVerification issues a fresh verification token for the address on
// file and delivers it over the requested medium. The route is keyed by email
// and takes no bearer token: an unverified account cannot log in, so the
// caller has no credentials yet. Whether the email maps to an account is not
// disclosed. The medium is checked before issuing so a bad request cannot
// supersede a still-valid token.
func (h *AccountHandler) RequestVerification(c echo.Context) error {
	var req dto.RequestTokenRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if _, ok := service.ParseTransmissionMedium(req.Medium); !ok {
		return writeServiceError(c, service.ErrInvalidMedium)
	}

	account, err := h.Accounts.FindByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return writeServiceError(c, err)
	}
	if account == nil {
		return c.NoContent(http.StatusAccepted)
	}

	issued, err := h.Tokens.IssueVerificationToken(c.Request().Context(), account.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	if err := h.Notifier.SendVerificationToken(c.Request().Context(), account, issued.Token, req.Medium); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusAccepted)
}

func (h *AccountHandler) VerifyAccount(c echo.Context) error {
	var req dto.VerifyAccountRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Tokens.VerifyAccount(c.Request().Context(), req.Token); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// PasswordForgot answers an identical bare 202 whether or not the email maps
// to an account; the medium is checked up front so the validation outcome
// cannot differ between the two branches either.
func (h *AccountHandler) PasswordForgot(c echo.Context) error {
	var req dto.PasswordForgotRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	medium := req.Medium
	if medium == "" {
		medium = string(service.MediumEmail)
	}
	if _, ok := service.ParseTransmissionMedium(medium); !ok {
		return writeServiceError(c, service.ErrInvalidMedium)
	}

	account, err := h.Accounts.FindByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return writeServiceError(c, err)
	}
	if account == nil {
		return c.NoContent(http.StatusAccepted)
	}

	issued, err := h.Tokens.IssueResetPasswordToken(c.Request().Context(), account.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	if err := h.Notifier.SendResetPasswordToken(c.Request().Context(), account, issued.Token, medium); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusAccepted)
}

func (h *AccountHandler) PasswordReset(c echo.Context) error {
	var req dto.PasswordResetRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.ResetPasswordInput{
		Token:           req.Token,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}
	if err := h.Tokens.ResetPassword(c.Request().Context(), input); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHandler) Me(c echo.Context) error {
	current, ok := middleware.AccountFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	return c.JSON(http.StatusOK, dto.AccountResponseFromEntity(current))
}

func (h *AccountHandler) GetProfile(c echo.Context) error {
	current, ok := middleware.AccountFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid account id"))
	}
	account, err := h.Accounts.GetProfile(c.Request().Context(), accountID, current)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.AccountResponseFromEntity(account))
}

func (h *AccountHandler) AssignRole(c echo.Context) error {
	current, ok := middleware.AccountFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	accountID, roleID, err := parseAccountRoleParams(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	account, err := h.Accounts.AssignRole(c.Request().Context(), accountID, roleID, current)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.AccountResponseFromEntity(account))
}

func (h *AccountHandler) UnassignRole(c echo.Context) error {
	current, ok := middleware.AccountFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	accountID, roleID, err := parseAccountRoleParams(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	account, err := h.Accounts.UnassignRole(c.Request().Context(), accountID, roleID, current)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.AccountResponseFromEntity(account))
}

func (h *AccountHandler) writeLoginResponse(c echo.Context, account *entity.Account) error {
	accessToken, ttl, err := h.Issuer.IssueAccessToken(account)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(ttl.Seconds()),
		TokenType:   "Bearer",
		Account:     dto.AccountResponseFromEntity(account),
	})
}

func (h *AccountHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

func parseAccountRoleParams(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("invalid account id")
	}
	roleID, err := uuid.Parse(c.Param("roleId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("invalid role id")
	}
	return accountID, roleID, nil
}

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

func writeServiceError(c echo.Context, err error) error {
	switch service.KindOf(err) {
	case service.KindValidation:
		return writeError(c, http.StatusBadRequest, err)
	case service.KindConflict:
		return writeError(c, http.StatusConflict, err)
	case service.KindNotFound:
		return writeError(c, http.StatusNotFound, err)
	case service.KindUnauthorized:
		return writeError(c, http.StatusUnauthorized, err)
	case service.KindForbidden:
		return writeError(c, http.StatusForbidden, err)
	default:
		return writeError(c, http.StatusInternalServerError, errors.New("internal server error"))
	}
}
