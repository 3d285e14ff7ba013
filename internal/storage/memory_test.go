package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"cloudapi/internal/models"

	"github.com/stretchr/testify/require"
)

func TestMemoryStorage_CreateAndGet(t *testing.T) {
	t.Parallel()

	st := NewMemoryStorage()
	ctx := context.Background()

	account := models.Account{
		Username:     "alice",
		Email:        "alice@x.com",
		FullName:     "Alice Example",
		PasswordHash: "hash",
	}

	require.NoError(t, st.Create(ctx, account))

	got, err := st.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, account, got)

	_, err = st.Get(ctx, "bob")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryStorage_DuplicateUsername(t *testing.T) {
	t.Parallel()

	st := NewMemoryStorage()
	ctx := context.Background()

	first := models.Account{Username: "alice", Email: "alice@x.com", PasswordHash: "h1"}
	require.NoError(t, st.Create(ctx, first))

	second := models.Account{Username: "alice", Email: "other@x.com", PasswordHash: "h2"}
	require.ErrorIs(t, st.Create(ctx, second), ErrUsernameTaken)

	// first write wins
	got, err := st.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice@x.com", got.Email)
}

func TestMemoryStorage_DuplicateEmail(t *testing.T) {
	t.Parallel()

	st := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, st.Create(ctx, models.Account{Username: "alice", Email: "alice@x.com"}))

	err := st.Create(ctx, models.Account{Username: "bob", Email: "alice@x.com"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestMemoryStorage_ExistsByEmail(t *testing.T) {
	t.Parallel()

	st := NewMemoryStorage()
	ctx := context.Background()

	require.False(t, st.ExistsByEmail(ctx, "alice@x.com"))

	require.NoError(t, st.Create(ctx, models.Account{Username: "alice", Email: "alice@x.com"}))

	require.True(t, st.ExistsByEmail(ctx, "alice@x.com"))
	require.False(t, st.ExistsByEmail(ctx, "bob@x.com"))
}

func TestMemoryStorage_ConcurrentCreateSameUsername(t *testing.T) {
	t.Parallel()

	const workers = 32

	st := NewMemoryStorage()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- st.Create(ctx, models.Account{
				Username: "alice",
				Email:    fmt.Sprintf("alice%d@x.com", i),
			})
		}(i)
	}

	wg.Wait()
	close(errs)

	var succeeded, conflicted int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrUsernameTaken)
			conflicted++
		}
	}

	require.Equal(t, 1, succeeded)
	require.Equal(t, workers-1, conflicted)
}
