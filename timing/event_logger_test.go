package timing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/novaera/showcase/hooking"
)

type namedHandler struct {
	*MockHandler
}

func (namedHandler) Name() string {
	return "Carousel"
}

var _ = Describe("EventLogger", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *SerialEngine
		logs     *observer.ObservedLogs
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewSerialEngine()

		var core zapcore.Core
		core, logs = observer.New(zapcore.DebugLevel)
		engine.AcceptHook(hooking.AtPositions(
			NewEventLogger(zap.New(core)), HookPosBeforeEvent))
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should log each event once with its handler name", func() {
		handler := namedHandler{NewMockHandler(mockCtrl)}
		evt := newSampleEvent(42, handler)
		handler.EXPECT().Handle(evt)

		engine.Schedule(evt)
		Expect(engine.Run()).To(Succeed())

		entries := logs.All()
		Expect(entries).To(HaveLen(1))

		fields := entries[0].ContextMap()
		Expect(fields).To(HaveKeyWithValue("time_ms", uint64(42)))
		Expect(fields).To(HaveKeyWithValue("handler", "Carousel"))
		Expect(fields).To(HaveKeyWithValue("id", evt.ID()))
	})

	It("should log at both positions when attached directly", func() {
		direct := NewSerialEngine()
		core, all := observer.New(zapcore.DebugLevel)
		direct.AcceptHook(NewEventLogger(zap.New(core)))

		handler := namedHandler{NewMockHandler(mockCtrl)}
		evt := newSampleEvent(7, handler)
		handler.EXPECT().Handle(evt)

		direct.Schedule(evt)
		Expect(direct.Run()).To(Succeed())

		Expect(all.All()).To(HaveLen(2))
	})
})
