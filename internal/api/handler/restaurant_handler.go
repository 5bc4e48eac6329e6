package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/awesomeeats/restaurant-api/internal/core/domain"
	"github.com/awesomeeats/restaurant-api/internal/core/ports"
)

// RestaurantHandler handles HTTP requests for the restaurant catalogue.
type RestaurantHandler struct {
	service ports.RestaurantService
}

func NewRestaurantHandler(service ports.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{service: service}
}

type addressRequest struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

type createRestaurantRequest struct {
	Name    string         `json:"name" validate:"required"`
	Address addressRequest `json:"address"`
}

// List handles GET /restaurants.
//
// @Summary      Get the paginated restaurants list
// @Tags         restaurants
// @Produce      json
// @Param        page  query     int  false  "0-based page index"  default(0)
// @Param        size  query     int  false  "items per page"      default(20)
// @Success      200   {object}  ports.ListResult[domain.Restaurant]
// @Failure      400   {object}  map[string]string
// @Router       /restaurants [get]
func (h *RestaurantHandler) List(c echo.Context) error {
	pageIndex, itemsPerPage, err := pageParams(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), pageIndex, itemsPerPage)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Get handles GET /restaurants/:id.
//
// @Summary      Get a specific restaurant
// @Tags         restaurants
// @Produce      json
// @Param        id   path      string  true  "Restaurant id"
// @Success      200  {object}  domain.Restaurant
// @Failure      404  {object}  map[string]string
// @Router       /restaurants/{id} [get]
func (h *RestaurantHandler) Get(c echo.Context) error {
	restaurant, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, restaurant)
}

// Create handles POST /restaurants, admin-only catalogue maintenance.
//
// @Summary      Add a restaurant to the catalogue
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRestaurantRequest  true  "Restaurant details"
// @Success      201   {object}  domain.Restaurant
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /restaurants [post]
func (h *RestaurantHandler) Create(c echo.Context) error {
	var req createRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	restaurant, err := h.service.Create(c.Request().Context(), ports.CreateRestaurantInput{
		Name: req.Name,
		Address: domain.Address{
			Street:  req.Address.Street,
			City:    req.Address.City,
			ZipCode: req.Address.ZipCode,
			Country: req.Address.Country,
		},
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, restaurant)
}
