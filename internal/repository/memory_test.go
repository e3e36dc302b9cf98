package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit/shop-service/internal/domain"
)

func TestMemoryUserRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	user := &domain.User{Firstname: "John", Lastname: "Doe", Email: "john@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byEmail, err := repo.GetByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", byID.Email)

	_, err = repo.GetByEmail(ctx, "JOHN@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserRepository_RejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Create(ctx, &domain.User{Email: "a@example.com"}))
	err := repo.Create(ctx, &domain.User{Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestMemoryUserRepository_ConcurrentCreateSameEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	const workers = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Create(ctx, &domain.User{Email: "race@example.com"}); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestMemoryProductRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProductRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first := &domain.Product{Title: "first", ImageURLs: []string{"a.png"}}
	second := &domain.Product{Title: "second", ImageURLs: []string{"b.png"}}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)

	deleted, err := repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", deleted.Title)

	_, err = repo.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Delete(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepositories_HonourCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryUserRepository().List(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = NewMemoryProductRepository().List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
