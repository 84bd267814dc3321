// Package hooking lets observers attach to the engine and to components
// without those types knowing who is listening.
package hooking

import "reflect"

// HookPos names a place where a hookable raises its hooks.
type HookPos struct {
	Name string
}

// HookCtx is what a hook receives when it fires.
type HookCtx struct {
	// Domain raised the hook.
	Domain Hookable

	// Pos is where in the domain the hook fired.
	Pos *HookPos

	// Item is the subject: an event for the engine, a transition for a
	// carousel.
	Item any

	// Detail is optional extra data, such as the error a handler returned.
	Detail any
}

// Hookable is anything hooks can be attached to.
type Hookable interface {
	// AcceptHook attaches a hook. Hooks are attached while wiring, before
	// the domain runs, and stay for its lifetime.
	AcceptHook(hook Hook)

	// NumHooks returns the number of attached hooks.
	NumHooks() int

	// Hooks returns the attached hooks.
	Hooks() []Hook

	// InvokeHook calls every attached hook with ctx.
	InvokeHook(ctx HookCtx)
}

// Hook reacts to a HookCtx.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc adapts a plain function to the Hook interface.
type HookFunc func(ctx HookCtx)

// Func calls f(ctx).
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

type posFilter struct {
	hook      Hook
	positions []*HookPos
}

// AtPositions wraps hook so that it only fires at the given positions.
func AtPositions(hook Hook, positions ...*HookPos) Hook {
	return &posFilter{hook: hook, positions: positions}
}

func (f *posFilter) Func(ctx HookCtx) {
	for _, p := range f.positions {
		if p == ctx.Pos {
			f.hook.Func(ctx)
			return
		}
	}
}

// HookableBase implements Hookable for embedding.
type HookableBase struct {
	hooks []Hook
}

// NewHookableBase creates a HookableBase with no hooks.
func NewHookableBase() *HookableBase {
	return &HookableBase{}
}

// NumHooks returns the number of attached hooks.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// Hooks returns a copy of the attached hooks in attach order.
func (h *HookableBase) Hooks() []Hook {
	out := make([]Hook, len(h.hooks))
	copy(out, h.hooks)

	return out
}

// AcceptHook attaches a hook. Attaching the same comparable hook twice
// panics; function hooks cannot be compared and are always accepted.
func (h *HookableBase) AcceptHook(hook Hook) {
	if reflect.TypeOf(hook).Comparable() {
		for _, existing := range h.hooks {
			if reflect.TypeOf(existing).Comparable() && existing == hook {
				panic("hooking: hook attached twice")
			}
		}
	}

	h.hooks = append(h.hooks, hook)
}

// InvokeHook calls the attached hooks in attach order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}

var _ Hookable = (*HookableBase)(nil)
