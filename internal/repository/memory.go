package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shopkit/shop-service/internal/domain"
)

// MemoryUserRepository keeps users in process memory. The email index is
// checked and written under one lock so uniqueness holds under concurrency.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
	order   []string
	now     func() time.Time
}

// NewMemoryUserRepository returns an empty in-memory user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

var _ UserRepository = (*MemoryUserRepository)(nil)

func (r *MemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return ErrDuplicateEmail
	}
	user.ID = uuid.NewString()
	user.CreatedAt = r.now().UTC()

	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	r.order = append(r.order, user.ID)
	return nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	user := r.byID[id]
	return &user, nil
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, r.byID[id])
	}
	return users, nil
}

// MemoryProductRepository keeps the catalogue in process memory.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	now      func() time.Time
}

// NewMemoryProductRepository returns an empty in-memory catalogue.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]domain.Product),
		now:      time.Now,
	}
}

var _ ProductRepository = (*MemoryProductRepository)(nil)

func (r *MemoryProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = uuid.NewString()
	product.CreatedAt = r.now().UTC()
	stored := *product
	stored.ImageURLs = append([]string(nil), product.ImageURLs...)
	r.products[product.ID] = stored
	return nil
}

func (r *MemoryProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

func (r *MemoryProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0, len(r.products))
	for _, product := range r.products {
		products = append(products, product)
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

func (r *MemoryProductRepository) Delete(ctx context.Context, id string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.products, id)
	return &product, nil
}
