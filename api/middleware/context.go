package middleware

import (
	"accounthub/internal/entity"

	"github.com/labstack/echo/v4"
)

const contextAccountKey = "auth_account"

func SetAuthContext(c echo.Context, account *entity.Account) {
	c.Set(contextAccountKey, account)
}

// AccountFromContext returns the authenticated account, loaded with its
// role/permission graph.
func AccountFromContext(c echo.Context) (*entity.Account, bool) {
	value := c.Get(contextAccountKey)
	account, ok := value.(*entity.Account)
	if !ok || account == nil {
		return nil, false
	}
	return account, true
}
