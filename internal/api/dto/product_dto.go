package dto

import "github.com/shopkit/shop-service/internal/domain"

// DeleteProductResponse is returned by DELETE /api/product/delete/:id.
type DeleteProductResponse struct {
	Message string         `json:"message"`
	Product domain.Product `json:"Product"`
}
