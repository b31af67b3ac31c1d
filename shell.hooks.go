package main

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
)

// ActionFunc is the unit of work behind a menu entry. It receives the
// session context and reports how the action ended. Validation issues
// are rendered to the user inside the action and never bubble up.
type ActionFunc func(ctx context.Context) error

// ActionHook is a custom type for ease of use.
type ActionHook func(ActionFunc) ActionFunc

// ActionHooks is a custom type to represent a stack of
// hook functions used to build a single chain.
type ActionHooks []ActionHook

// HooksStack builds the ordered stack of hooks wrapping each menu action.
func (sh *Shell) HooksStack(label string) ActionHooks {
	return ActionHooks{
		sh.PanicRecoveryHook,
		sh.ActionIDHook,
		sh.ActionsCounterHook(label),
		sh.ActionLoggingHook(label),
	}
}

// ActionLoggingHook setup the duration measurement for each action and logs its result.
func (sh *Shell) ActionLoggingHook(label string) ActionHook {
	return func(next ActionFunc) ActionFunc {
		return func(ctx context.Context) error {
			start := sh.clock.Now()
			actionID := GetValueFromContext(ctx, ActionIDContextKey)

			sh.logger.Info(
				"action",
				zap.String("action.id", actionID),
				zap.String("action.label", label),
				zap.Uint64("action.num", GetActionNumberFromContext(ctx)),
			)

			err := next(ctx)
			sh.logger.Info(
				"action",
				zap.String("action.id", actionID),
				zap.String("action.label", label),
				zap.Duration("action.duration", sh.clock.Now().Sub(start)),
				zap.Error(err),
			)
			return err
		}
	}
}

// ActionsCounterHook increments the number of dispatched actions statistics and adds this
// new value to the action context to be used during logging as `action.num` field. It
// also tracks how many times each menu entry was used during the session.
func (sh *Shell) ActionsCounterHook(label string) ActionHook {
	return func(next ActionFunc) ActionFunc {
		return func(ctx context.Context) error {
			ctx = context.WithValue(ctx, ActionNumberContextKey, atomic.AddUint64(&sh.stats.called, 1))
			sh.stats.mu.Lock()
			sh.stats.status[label]++
			sh.stats.mu.Unlock()
			return next(ctx)
		}
	}
}

// ActionIDHook generates and add a unique id to the action context.
func (sh *Shell) ActionIDHook(next ActionFunc) ActionFunc {
	return func(ctx context.Context) error {
		actionID := sh.ids.Generate(ActionIDPrefix)
		ctx = context.WithValue(ctx, ActionIDContextKey, actionID)
		return next(ctx)
	}
}

// PanicRecoveryHook catches any panic during the action lifecycle and produces
// an error log for further analysis. It renders a failure notice to the user.
func (sh *Shell) PanicRecoveryHook(next ActionFunc) ActionFunc {
	return func(ctx context.Context) (err error) {
		recovery := func() {
			if r := recover(); r != nil {
				actionID := GetValueFromContext(ctx, ActionIDContextKey)
				sh.logger.Error("panic occurred", zap.String("action.id", actionID), zap.Any("error", r))
				sh.renderError("An unexpected error occurred.")
			}
		}
		defer recovery()
		return next(ctx)
	}
}

// Chain wraps a given ActionFunc with a list of hooks.
// It does by starting from the last hook from the list.
func (h *ActionHooks) Chain(f ActionFunc) ActionFunc {
	if len(*h) == 0 {
		return f
	}
	lg := len(*h)
	action := (*h)[lg-1](f)

	for i := lg - 2; i >= 0; i-- {
		action = (*h)[i](action)
	}

	return action
}
