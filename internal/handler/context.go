package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "greenjobs/internal/errors"
	"greenjobs/internal/model"
)

// CurrentUserKey is the echo context key the bearer middleware stores the
// authenticated *model.User under.
const CurrentUserKey = "user"

// CurrentUser returns the authenticated user of the request.
func CurrentUser(c echo.Context) (*model.User, error) {
	u, ok := c.Get(CurrentUserKey).(*model.User)
	if !ok || u == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return u, nil
}

func invalidBody() error {
	return apperrors.NewHTTPError(http.StatusBadRequest, "invalid request body")
}

func unprocessable(err error) error {
	return apperrors.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
}
