package showcase_test

import (
	"context"
	"time"

	"github.com/Edgar-mwila/portfolio/internal/carousel"
	"github.com/Edgar-mwila/portfolio/internal/clock"
	"github.com/Edgar-mwila/portfolio/internal/showcase"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registry", func() {
	var (
		fake      *clock.Fake
		registry  *showcase.Registry
		galleries map[string][]string
	)

	BeforeEach(func() {
		fake = clock.NewFake(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
		registry = showcase.NewRegistry(time.Second, time.Minute, showcase.WithClock(fake))
		galleries = map[string][]string{
			"habit-hub":   {"/habit-hub/1.jpg", "/habit-hub/2.jpg"},
			"rent":        {"/rent/1.png"},
			"empty-shelf": nil,
		}
		DeferCleanup(registry.Shutdown)
	})

	It("should open a session with one carousel per project", func() {
		s := registry.Open(galleries)

		Expect(s).NotTo(BeNil())
		Expect(s.ID).NotTo(BeEmpty())
		Expect(s.Projects()).To(Equal([]string{"empty-shelf", "habit-hub", "rent"}))

		c, ok := s.Carousel("habit-hub")
		Expect(ok).To(BeTrue())
		Expect(c.State()).To(Equal(carousel.StateRunning))

		c, ok = s.Carousel("rent")
		Expect(ok).To(BeTrue())
		Expect(c.State()).To(Equal(carousel.StateIdle))

		_, ok = s.Carousel("missing")
		Expect(ok).To(BeFalse())

		Expect(fake.Pending()).To(Equal(1))
	})

	It("should give each session its own carousels", func() {
		a := registry.Open(galleries)
		b := registry.Open(galleries)
		Expect(a.ID).NotTo(Equal(b.ID))

		ca, _ := a.Carousel("habit-hub")
		cb, _ := b.Carousel("habit-hub")
		ca.Advance()

		Expect(ca.Index()).To(Equal(1))
		Expect(cb.Index()).To(Equal(0))
	})

	It("should release timers when a session closes", func() {
		s := registry.Open(galleries)
		c, _ := s.Carousel("habit-hub")

		Expect(registry.Close(s.ID)).To(BeTrue())
		Expect(registry.Close(s.ID)).To(BeFalse())
		Expect(c.State()).To(Equal(carousel.StateClosed))
		Expect(fake.Pending()).To(BeZero())

		_, ok := registry.Get(s.ID)
		Expect(ok).To(BeFalse())
	})

	It("should expire idle sessions", func() {
		idle := registry.Open(galleries)
		active := registry.Open(galleries)

		fake.Advance(45 * time.Second)
		_, ok := registry.Get(active.ID)
		Expect(ok).To(BeTrue())

		fake.Advance(30 * time.Second)
		Expect(registry.Sweep()).To(Equal(1))

		_, ok = registry.Get(idle.ID)
		Expect(ok).To(BeFalse())
		_, ok = registry.Get(active.ID)
		Expect(ok).To(BeTrue())

		stats := registry.Stats()
		Expect(stats.ActiveSessions).To(Equal(1))
		Expect(stats.ActiveCarousels).To(Equal(3))
		Expect(stats.Opened).To(Equal(int64(2)))
		Expect(stats.Expired).To(Equal(int64(1)))
	})

	It("should sweep periodically while running", func() {
		registry.Open(galleries)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			registry.Run(ctx, 10*time.Second)
		}()

		Eventually(fake.Pending).Should(Equal(2))
		fake.Advance(2 * time.Minute)
		Expect(registry.Len()).To(BeZero())

		cancel()
		Eventually(done).Should(BeClosed())
		Expect(fake.Pending()).To(BeZero())
	})

	It("should evict the least recently seen session when full", func() {
		capped := showcase.NewRegistry(time.Second, time.Minute,
			showcase.WithClock(fake), showcase.WithMaxSessions(2))
		DeferCleanup(capped.Shutdown)

		first := capped.Open(galleries)
		fake.Advance(time.Second)
		second := capped.Open(galleries)
		fake.Advance(time.Second)

		// Seeing the first session again makes the second the oldest.
		_, ok := capped.Get(first.ID)
		Expect(ok).To(BeTrue())
		stale, _ := second.Carousel("habit-hub")

		third := capped.Open(galleries)

		Expect(capped.Len()).To(Equal(2))
		_, ok = capped.Get(second.ID)
		Expect(ok).To(BeFalse())
		Expect(stale.State()).To(Equal(carousel.StateClosed))
		_, ok = capped.Get(first.ID)
		Expect(ok).To(BeTrue())
		_, ok = capped.Get(third.ID)
		Expect(ok).To(BeTrue())

		stats := capped.Stats()
		Expect(stats.Evicted).To(Equal(int64(1)))
		Expect(stats.MaxSessions).To(Equal(2))
	})

	It("should keep timers bounded under a flood of opens", func() {
		capped := showcase.NewRegistry(time.Second, time.Minute,
			showcase.WithClock(fake), showcase.WithMaxSessions(10))
		DeferCleanup(capped.Shutdown)

		for i := 0; i < 500; i++ {
			Expect(capped.Open(galleries)).NotTo(BeNil())
		}

		Expect(capped.Len()).To(Equal(10))
		// One multi-image gallery per session runs a timer.
		Expect(fake.Pending()).To(Equal(10))
	})

	It("should refuse new sessions after Shutdown", func() {
		s := registry.Open(galleries)
		c, _ := s.Carousel("habit-hub")

		registry.Shutdown()

		Expect(c.State()).To(Equal(carousel.StateClosed))
		Expect(registry.Len()).To(BeZero())
		Expect(registry.Open(galleries)).To(BeNil())
		Expect(fake.Pending()).To(BeZero())
	})
})
