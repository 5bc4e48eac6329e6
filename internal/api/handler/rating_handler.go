package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/awesomeeats/restaurant-api/internal/api/metrics"
	"github.com/awesomeeats/restaurant-api/internal/core/ports"
)

// RatingHandler handles HTTP requests for restaurant ratings.
type RatingHandler struct {
	service ports.RatingService
}

func NewRatingHandler(service ports.RatingService) *RatingHandler {
	return &RatingHandler{service: service}
}

type submitRatingRequest struct {
	Score   float64 `json:"score" validate:"gte=0,lte=5"`
	Comment string  `json:"comment"`
}

// List handles GET /restaurants/:id/ratings.
//
// @Summary      Get the paginated ratings of the given restaurant
// @Tags         ratings
// @Produce      json
// @Param        id    path      string  true   "Restaurant id"
// @Param        page  query     int     false  "0-based page index"  default(0)
// @Param        size  query     int     false  "items per page"      default(20)
// @Success      200   {object}  ports.ListResult[ports.RatingView]
// @Failure      400   {object}  map[string]string
// @Router       /restaurants/{id}/ratings [get]
func (h *RatingHandler) List(c echo.Context) error {
	pageIndex, itemsPerPage, err := pageParams(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), c.Param("id"), pageIndex, itemsPerPage)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Get handles GET /restaurants/:id/ratings/:ratingId.
//
// @Summary      Get a specific rating
// @Tags         ratings
// @Produce      json
// @Param        id        path      string  true  "Restaurant id"
// @Param        ratingId  path      string  true  "Rating id"
// @Success      200       {object}  ports.RatingView
// @Failure      404       {object}  map[string]string
// @Router       /restaurants/{id}/ratings/{ratingId} [get]
func (h *RatingHandler) Get(c echo.Context) error {
	rating, err := h.service.Get(c.Request().Context(), c.Param("id"), c.Param("ratingId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rating)
}

// Submit handles POST /restaurants/:id/ratings.
//
// @Summary      Send a new rating for a restaurant
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Restaurant id"
// @Param        body  body      submitRatingRequest  true  "Rating"
// @Success      200   {object}  ports.NewRatingResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /restaurants/{id}/ratings [post]
func (h *RatingHandler) Submit(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req submitRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Submit(c.Request().Context(), ports.SubmitRatingInput{
		RestaurantID: c.Param("id"),
		Score:        req.Score,
		Comment:      req.Comment,
		UserID:       userID,
	})
	if err != nil {
		return err
	}

	metrics.RatingsSubmittedTotal.Inc()
	return c.JSON(http.StatusOK, result)
}
