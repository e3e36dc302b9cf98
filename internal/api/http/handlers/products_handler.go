package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shopkit/shop-service/internal/api/dto"
	"github.com/shopkit/shop-service/internal/service"
	apperrors "github.com/shopkit/shop-service/pkg/util/errorutil"
)

// ProductsHandler manages catalogue endpoints.
type ProductsHandler struct {
	service *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{service: productService}
}

// List GET /api/product/all.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// Get GET /api/product/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// Create POST /api/product/create.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req service.ProductCreateInput
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	product, err := h.service.CreateProduct(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// Delete DELETE /api/product/delete/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	product, err := h.service.DeleteProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.DeleteProductResponse{
		Message: "Product deleted successfully",
		Product: *product,
	})
}
