package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ctxUserID extracts the authenticated user's id injected by the Auth
// middleware. Its presence proves the middleware ran; without it the route
// was wired incorrectly and the request must not proceed.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}

// pageParams parses the page/size query parameters. pageIndex is 0-based.
// A non-positive size is a precondition violation and rejected here, before
// any listing component sees it.
func pageParams(c echo.Context) (pageIndex, itemsPerPage int, err error) {
	pageIndex = 0
	if raw := c.QueryParam("page"); raw != "" {
		pageIndex, err = strconv.Atoi(raw)
		if err != nil || pageIndex < 0 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "page must be a non-negative integer")
		}
	}

	itemsPerPage = defaultPageSize
	if raw := c.QueryParam("size"); raw != "" {
		itemsPerPage, err = strconv.Atoi(raw)
		if err != nil || itemsPerPage <= 0 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "size must be a positive integer")
		}
	}
	if itemsPerPage > maxPageSize {
		itemsPerPage = maxPageSize
	}

	return pageIndex, itemsPerPage, nil
}
