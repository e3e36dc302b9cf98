package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/shopkit/shop-service/internal/domain"
)

// ProductRepository defines persistence access for the catalogue.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	// Delete removes the product and returns the row as it was stored.
	Delete(ctx context.Context, id string) (*domain.Product, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `id::text, title, price, description, category, brand, image_urls, created_at`

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (id, title, price, description, category, brand, image_urls)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at`

	id := uuid.NewString()
	if err := r.pool.QueryRow(ctx, query,
		id,
		product.Title,
		product.Price,
		product.Description,
		product.Category,
		product.Brand,
		product.ImageURLs,
	).Scan(&product.CreatedAt); err != nil {
		return errors.Wrap(err, "insert product")
	}
	product.ID = id
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`

	product, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if translated := translate(err); errors.Is(translated, ErrNotFound) {
			return nil, translated
		}
		return nil, errors.Wrap(err, "get product")
	}
	return product, nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan product")
		}
		products = append(products, *product)
	}
	return products, errors.Wrap(rows.Err(), "iterate products")
}

func (r *productRepository) Delete(ctx context.Context, id string) (*domain.Product, error) {
	query := `DELETE FROM products WHERE id=$1 RETURNING ` + productColumns

	product, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if translated := translate(err); errors.Is(translated, ErrNotFound) {
			return nil, translated
		}
		return nil, errors.Wrap(err, "delete product")
	}
	return product, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var product domain.Product
	if err := row.Scan(
		&product.ID,
		&product.Title,
		&product.Price,
		&product.Description,
		&product.Category,
		&product.Brand,
		&product.ImageURLs,
		&product.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}
