package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestHooksStack ensures each dispatched action goes through the
// exact number of hooks.
func TestHooksStack(t *testing.T) {
	storage := &MockCatalogStorage{
		SaveFunc: func(_ context.Context, _ []Book) error { return nil },
	}
	sh, _ := newTestShell("", nil, storage)
	hooks := sh.HooksStack("Add Book")
	assert.Equal(t, 4, len(hooks))
}

// TestChain ensures each hook in the stack is called as well the action.
func TestChain(t *testing.T) {
	var ca, cb, cc, cf bool
	queue := make(chan int, 4)

	hookA := func(next ActionFunc) ActionFunc {
		return func(ctx context.Context) error {
			queue <- 1
			ca = true
			return next(ctx)
		}
	}
	hookB := func(next ActionFunc) ActionFunc {
		return func(ctx context.Context) error {
			queue <- 2
			cb = true
			return next(ctx)
		}
	}
	hookC := func(next ActionFunc) ActionFunc {
		return func(ctx context.Context) error {
			queue <- 3
			cc = true
			return next(ctx)
		}
	}
	hooks := ActionHooks{
		hookA,
		hookB,
		hookC,
	}

	action := func(ctx context.Context) error {
		queue <- 4
		cf = true
		return nil
	}

	chained := (&hooks).Chain(action)
	assert.NoError(t, chained(context.TODO()))

	t.Run("check calling", func(t *testing.T) {
		assert.Equal(t, true, ca)
		assert.Equal(t, true, cb)
		assert.Equal(t, true, cc)
		assert.Equal(t, true, cf)
	})

	t.Run("check ordering", func(t *testing.T) {
		assert.Equal(t, 1, <-queue)
		assert.Equal(t, 2, <-queue)
		assert.Equal(t, 3, <-queue)
		assert.Equal(t, 4, <-queue)
	})
}

// TestActionsCounterHook ensures the actions counter increments and
// lands into the action context.
func TestActionsCounterHook(t *testing.T) {
	storage := &MockCatalogStorage{
		SaveFunc: func(_ context.Context, _ []Book) error { return nil },
	}
	sh, _ := newTestShell("", nil, storage)

	var nums []uint64
	action := func(ctx context.Context) error {
		nums = append(nums, GetActionNumberFromContext(ctx))
		return nil
	}
	wrapped := sh.ActionsCounterHook("Search Book")(action)

	assert.NoError(t, wrapped(context.TODO()))
	assert.NoError(t, wrapped(context.TODO()))

	assert.Equal(t, []uint64{1, 2}, nums)
	assert.Equal(t, uint64(2), sh.stats.called)
	assert.Equal(t, uint64(2), sh.stats.status["Search Book"])
}

// TestActionIDHook ensures each action receives a prefixed unique id.
func TestActionIDHook(t *testing.T) {
	storage := &MockCatalogStorage{
		SaveFunc: func(_ context.Context, _ []Book) error { return nil },
	}
	sh, _ := newTestShell("", nil, storage)

	var gotID string
	action := func(ctx context.Context) error {
		gotID = GetValueFromContext(ctx, ActionIDContextKey)
		return nil
	}
	wrapped := sh.ActionIDHook(action)

	assert.NoError(t, wrapped(context.TODO()))
	assert.Equal(t, "a:fixed", gotID)
}

// TestPanicRecoveryHook ensures a panicking action neither crashes the
// session nor leaks the panic as an error.
func TestPanicRecoveryHook(t *testing.T) {
	storage := &MockCatalogStorage{
		SaveFunc: func(_ context.Context, _ []Book) error { return nil },
	}
	sh, out := newTestShell("", nil, storage)

	action := func(_ context.Context) error {
		panic("boom")
	}
	wrapped := sh.PanicRecoveryHook(action)

	assert.NotPanics(t, func() {
		assert.NoError(t, wrapped(context.TODO()))
	})
	assert.Contains(t, out.String(), "An unexpected error occurred.")
}
