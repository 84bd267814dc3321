package carousel

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/novaera/showcase/timing"
)

var _ = Describe("Deck", func() {
	var (
		engine *timing.SerialEngine
		ctrl   *Controller
		deck   *Deck
	)

	BeforeEach(func() {
		var err error

		engine = timing.NewSerialEngine()
		ctrl = MakeBuilder().WithEngine(engine).Build("Carousel")
		deck, err = NewDeck(ctrl, DefaultSlides())
		Expect(err).NotTo(HaveOccurred())
	})

	It("should refuse an empty slide set", func() {
		other := MakeBuilder().WithEngine(engine).Build("Empty")

		_, err := NewDeck(other, nil)

		Expect(err).To(MatchError(ErrInvalidConfiguration))
	})

	It("should not be affected by later changes to the input slice", func() {
		slides := DefaultSlides()
		d, err := NewDeck(MakeBuilder().WithEngine(engine).Build("Copy"), slides)
		Expect(err).NotTo(HaveOccurred())

		slides[0].Title = "changed"
		out := d.Slides()
		out[1].Title = "changed too"

		Expect(d.Slides()[0].Title).To(Equal("Capa Impactante"))
		Expect(d.Slides()[1].Title).To(Equal("Didática Facilitada"))
	})

	It("should show the first slide before mounting", func() {
		Expect(deck.Len()).To(Equal(5))
		Expect(deck.ActiveSlide().Title).To(Equal("Capa Impactante"))
		Expect(deck.Controller()).To(BeIdenticalTo(ctrl))
	})

	It("should keep the cursor inside the deck when started directly", func() {
		Expect(ctrl.Start(8, 4000)).To(MatchError(ErrInvalidConfiguration))
		Expect(ctrl.Start(3, 4000)).To(MatchError(ErrInvalidConfiguration))
		Expect(ctrl.IsRunning()).To(BeFalse())

		Expect(ctrl.Start(deck.Len(), 4000)).To(Succeed())
		Expect(engine.RunUntil(7 * 4000)).To(Succeed())

		Expect(deck.ActiveIndex()).To(Equal(2))
		Expect(deck.ActiveSlide()).To(Equal(DefaultSlides()[2]))
	})

	It("should accept selections before mounting", func() {
		Expect(deck.Select(2)).To(Succeed())
		Expect(deck.ActiveSlide().ImageRef).To(Equal("https://i.ibb.co/chRPVh8M/3.png"))
	})

	It("should rotate while mounted", func() {
		unmount, err := deck.Mount()
		Expect(err).NotTo(HaveOccurred())

		Expect(engine.RunUntil(8000)).To(Succeed())
		Expect(deck.ActiveIndex()).To(Equal(2))

		unmount()
		unmount()

		Expect(ctrl.IsRunning()).To(BeFalse())
		Expect(engine.RunUntil(40000)).To(Succeed())
		Expect(deck.ActiveIndex()).To(Equal(2))
	})

	It("should mount with a custom interval", func() {
		unmount, err := deck.MountWithInterval(1000)
		Expect(err).NotTo(HaveOccurred())
		defer unmount()

		Expect(engine.RunUntil(3000)).To(Succeed())
		Expect(deck.ActiveIndex()).To(Equal(3))
	})

	It("should fail to mount with a zero interval", func() {
		_, err := deck.MountWithInterval(0)

		Expect(err).To(MatchError(ErrInvalidConfiguration))
	})

	It("should mark exactly one indicator active", func() {
		Expect(deck.Select(3)).To(Succeed())

		indicators := deck.Indicators()

		Expect(indicators).To(HaveLen(5))
		active := 0
		for i, ind := range indicators {
			Expect(ind.Index).To(Equal(i))
			if ind.Active {
				active++
				Expect(ind.Index).To(Equal(3))
			}
		}
		Expect(active).To(Equal(1))
	})

	It("should report out of range selections", func() {
		Expect(deck.Select(5)).To(MatchError(ErrOutOfRange))
		Expect(deck.ActiveIndex()).To(Equal(0))
	})

	Context("with a scoped rotation", func() {
		It("should stop rotation when the scope returns", func() {
			err := deck.WithRotation(func() error {
				Expect(ctrl.IsRunning()).To(BeTrue())
				return engine.RunUntil(4000)
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.IsRunning()).To(BeFalse())
			Expect(deck.ActiveIndex()).To(Equal(1))
		})

		It("should stop rotation when the scope fails", func() {
			boom := errors.New("boom")

			err := deck.WithRotation(func() error { return boom })

			Expect(err).To(MatchError(boom))
			Expect(ctrl.IsRunning()).To(BeFalse())
			Expect(engine.Pending()).To(BeZero())
		})

		It("should stop rotation when the scope panics", func() {
			Expect(func() {
				_ = deck.WithRotation(func() error { panic("boom") })
			}).To(Panic())

			Expect(ctrl.IsRunning()).To(BeFalse())
			Expect(engine.Pending()).To(BeZero())
		})
	})
})
