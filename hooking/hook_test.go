package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type countingHook struct {
	positions []string
}

func (h *countingHook) Func(ctx HookCtx) {
	h.positions = append(h.positions, ctx.Pos.Name)
}

var _ = Describe("HookableBase", func() {
	var (
		base *HookableBase
		pos  *HookPos
	)

	BeforeEach(func() {
		base = NewHookableBase()
		pos = &HookPos{Name: "Somewhere"}
	})

	It("should invoke hooks in registration order", func() {
		var order []int
		base.AcceptHook(HookFunc(func(HookCtx) { order = append(order, 1) }))
		base.AcceptHook(HookFunc(func(HookCtx) { order = append(order, 2) }))

		base.InvokeHook(HookCtx{Domain: base, Pos: pos})

		Expect(order).To(Equal([]int{1, 2}))
		Expect(base.NumHooks()).To(Equal(2))
	})

	It("should pass the context through", func() {
		hook := &countingHook{}
		base.AcceptHook(hook)

		base.InvokeHook(HookCtx{Domain: base, Pos: pos, Item: 42})

		Expect(hook.positions).To(Equal([]string{"Somewhere"}))
		Expect(base.Hooks()).To(ContainElement(hook))
	})

	It("should refuse the same hook twice", func() {
		hook := &countingHook{}
		base.AcceptHook(hook)

		Expect(func() { base.AcceptHook(hook) }).To(Panic())
	})

	It("should hand out a copy of the hook list", func() {
		hook := &countingHook{}
		base.AcceptHook(hook)

		hooks := base.Hooks()
		hooks[0] = nil

		Expect(base.Hooks()).To(Equal([]Hook{hook}))
	})

	It("should only fire a filtered hook at its positions", func() {
		other := &HookPos{Name: "Elsewhere"}
		hook := &countingHook{}
		base.AcceptHook(AtPositions(hook, other))

		base.InvokeHook(HookCtx{Domain: base, Pos: pos})
		base.InvokeHook(HookCtx{Domain: base, Pos: other})

		Expect(hook.positions).To(Equal([]string{"Elsewhere"}))
	})
})
