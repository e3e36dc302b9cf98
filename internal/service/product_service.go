package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopkit/shop-service/internal/cache"
	"github.com/shopkit/shop-service/internal/domain"
	"github.com/shopkit/shop-service/internal/events"
	"github.com/shopkit/shop-service/internal/repository"
	"github.com/shopkit/shop-service/internal/validation"
	apperrors "github.com/shopkit/shop-service/pkg/util/errorutil"
)

const productResource = "Product"

// ProductService coordinates catalogue reads and writes.
type ProductService struct {
	products   repository.ProductRepository
	cache      *cache.ProductCache
	dispatcher events.Dispatcher
	validator  *validation.Validator
	logger     *zap.Logger
}

// ProductDependencies bundles collaborators for the product service.
type ProductDependencies struct {
	ProductRepo repository.ProductRepository
	Cache       *cache.ProductCache
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// CategoryInput describes the product's category.
type CategoryInput struct {
	ID    *int   `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Image string `json:"image" validate:"required"`
}

// ProductCreateInput is the product creation payload.
type ProductCreateInput struct {
	Title       string        `json:"title" validate:"required"`
	Price       *float64      `json:"price" validate:"required,gte=0"`
	Description string        `json:"description" validate:"required"`
	Category    CategoryInput `json:"category"`
	Brand       string        `json:"brand" validate:"required"`
	ImageURLs   []string      `json:"imageUrl" validate:"required,min=1,dive,required"`
}

// NewProductService constructs the service.
func NewProductService(deps ProductDependencies) *ProductService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		products:   deps.ProductRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		validator:  validation.New(),
		logger:     logger,
	}
}

// ListProducts returns the full catalogue, newest first.
func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if cached, ok := s.cache.GetList(ctx); ok {
		return cached, nil
	}
	gen := s.cache.Generation()
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	// Skipped when a write invalidated the cache while the store was read.
	s.cache.SetListIfCurrent(ctx, products, gen)
	return products, nil
}

// GetProduct returns one product by identifier.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound(productResource)
	}
	if cached, ok := s.cache.GetProduct(ctx, id); ok {
		return cached, nil
	}
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound(productResource)
		}
		return nil, apperrors.NewInternalError(err)
	}
	s.cache.SetProduct(ctx, product)
	return product, nil
}

// CreateProduct validates and stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductCreateInput) (*domain.Product, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Title:       in.Title,
		Price:       *in.Price,
		Description: in.Description,
		Category: domain.Category{
			ID:    *in.Category.ID,
			Name:  in.Category.Name,
			Image: in.Category.Image,
		},
		Brand:     in.Brand,
		ImageURLs: in.ImageURLs,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("product created", zap.String("product_id", product.ID))
	s.publish(ctx, events.EventProductCreated, product)
	return product, nil
}

// DeleteProduct removes a product and returns it as it was stored.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (*domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound(productResource)
	}
	product, err := s.products.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound(productResource)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.cache.Invalidate(ctx, id)
	s.logger.Info("product deleted", zap.String("product_id", id))
	s.publish(ctx, events.EventProductDeleted, product)
	return product, nil
}

func (s *ProductService) publish(ctx context.Context, eventType events.EventType, product *domain.Product) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		Type:        eventType,
		AggregateID: product.ID,
		Payload: events.ProductChangedPayload{
			Title: product.Title,
			Brand: product.Brand,
			Price: product.Price,
		},
	})
	if err != nil {
		s.logger.Warn("publish event", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}
