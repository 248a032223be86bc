package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/apiecommerce/catalog-api/internal/api/metrics"
	"github.com/apiecommerce/catalog-api/internal/core/domain"
	"github.com/apiecommerce/catalog-api/internal/core/ports"
)

type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List returns a page of products. Supports ?category_id=, ?search=,
// ?page= and ?limit= query parameters.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        category_id  query     string  false  "Scope to a category"
// @Param        search       query     string  false  "Partial name match"
// @Param        page         query     int     false  "Page (1-based)"
// @Param        limit        query     int     false  "Page size (max 100)"
// @Success      200          {object}  listProductsResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListProducts(c.Request().Context(), ports.ListProductsFilter{
		CategoryID: c.QueryParam("category_id"),
		Search:     c.QueryParam("search"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listProductsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get returns a product by id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create adds a new product.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.CreateProduct(c.Request().Context(), productInput(req))
	if err != nil {
		return err
	}

	metrics.ProductsCreatedTotal.WithLabelValues(product.CategoryID).Inc()
	return c.JSON(http.StatusCreated, product)
}

// Update replaces a product's details.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product details"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.UpdateProduct(c.Request().Context(), c.Param("id"), productInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Delete removes a product.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Buy decrements stock for a purchase.
//
// @Summary      Buy a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Product id"
// @Param        body  body      buyProductRequest  true  "Purchase quantity"
// @Success      200   {object}  domain.Product
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /products/{id}/buy [post]
func (h *ProductHandler) Buy(c echo.Context) error {
	var req buyProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	product, err := h.service.BuyProduct(c.Request().Context(), c.Param("id"), req.Quantity)
	if err != nil {
		metrics.ProductPurchasesTotal.WithLabelValues(purchaseResult(err)).Inc()
		return err
	}

	metrics.ProductPurchasesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, product)
}

func productInput(req productRequest) ports.ProductInput {
	return ports.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		SKU:         req.SKU,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	}
}

func purchaseResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "out_of_stock"
	case errors.Is(err, domain.ErrProductNotFound):
		return "not_found"
	default:
		return "error"
	}
}
