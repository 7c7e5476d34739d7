package carousel_test

import (
	"time"

	"github.com/Edgar-mwila/portfolio/internal/carousel"
	"github.com/Edgar-mwila/portfolio/internal/clock"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Controller", func() {
	var (
		start time.Time
		fake  *clock.Fake
	)

	BeforeEach(func() {
		start = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		fake = clock.NewFake(start)
	})

	newController := func(items []string, interval time.Duration) *carousel.Controller[string] {
		c := carousel.New(items, interval, carousel.WithClock(fake))
		DeferCleanup(c.Close)
		return c
	}

	Context("with three items", func() {
		var c *carousel.Controller[string]

		BeforeEach(func() {
			c = newController([]string{"A", "B", "C"}, time.Second)
		})

		It("should start running on the first item", func() {
			Expect(c.Index()).To(Equal(0))
			Expect(c.State()).To(Equal(carousel.StateRunning))
			Expect(c.Progress()).To(BeZero())
			Expect(fake.Pending()).To(Equal(1))

			item, ok := c.Current()
			Expect(ok).To(BeTrue())
			Expect(item).To(Equal("A"))
		})

		It("should advance on every interval", func() {
			fake.Advance(999 * time.Millisecond)
			Expect(c.Index()).To(Equal(0))

			fake.Advance(time.Millisecond)
			Expect(c.Index()).To(Equal(1))

			fake.Advance(2 * time.Second)
			Expect(c.Index()).To(Equal(0))
		})

		It("should restart the full interval after a pause", func() {
			fake.Advance(time.Second)
			Expect(c.Index()).To(Equal(1))

			fake.Set(start.Add(1500 * time.Millisecond))
			c.Pause()
			Expect(c.State()).To(Equal(carousel.StatePaused))

			fake.Set(start.Add(3000 * time.Millisecond))
			Expect(c.Index()).To(Equal(1))
			c.Resume()
			Expect(c.Progress()).To(BeZero())

			fake.Set(start.Add(3999 * time.Millisecond))
			Expect(c.Index()).To(Equal(1))

			fake.Set(start.Add(4000 * time.Millisecond))
			Expect(c.Index()).To(Equal(2))
		})

		It("should freeze progress while paused", func() {
			fake.Advance(400 * time.Millisecond)
			Expect(c.Progress()).To(BeNumerically("~", 0.4, 1e-9))

			c.Pause()
			c.Pause()
			fake.Advance(10 * time.Second)

			Expect(c.Progress()).To(BeNumerically("~", 0.4, 1e-9))
			Expect(c.Index()).To(Equal(0))
			Expect(fake.Pending()).To(BeZero())
		})

		It("should restart the interval on manual navigation", func() {
			fake.Advance(900 * time.Millisecond)
			c.Advance()
			Expect(c.Index()).To(Equal(1))
			Expect(c.Progress()).To(BeZero())

			fake.Advance(500 * time.Millisecond)
			Expect(c.Index()).To(Equal(1))
			Expect(c.Progress()).To(BeNumerically("~", 0.5, 1e-9))

			fake.Advance(500 * time.Millisecond)
			Expect(c.Index()).To(Equal(2))
			Expect(fake.Pending()).To(Equal(1))
		})

		It("should wrap backwards from the first item", func() {
			c.Retreat()
			Expect(c.Index()).To(Equal(2))
		})

		It("should jump with GoTo and ignore out of range requests", func() {
			Expect(c.GoTo(2)).To(BeTrue())
			Expect(c.Index()).To(Equal(2))

			fake.Advance(300 * time.Millisecond)
			Expect(c.GoTo(3)).To(BeFalse())
			Expect(c.GoTo(-1)).To(BeFalse())
			Expect(c.Index()).To(Equal(2))
			Expect(c.Progress()).To(BeNumerically("~", 0.3, 1e-9))
		})

		It("should stay paused when navigated manually", func() {
			c.Pause()
			c.Advance()

			Expect(c.Index()).To(Equal(1))
			Expect(c.Paused()).To(BeTrue())
			Expect(c.Progress()).To(BeZero())
			Expect(fake.Pending()).To(BeZero())
		})

		It("should report a consistent snapshot", func() {
			fake.Advance(250 * time.Millisecond)
			c.Pause()

			snap := c.Snapshot()
			Expect(snap.Index).To(Equal(0))
			Expect(snap.Length).To(Equal(3))
			Expect(snap.Paused).To(BeTrue())
			Expect(snap.State).To(Equal("paused"))
			Expect(snap.Progress).To(BeNumerically("~", 0.25, 1e-9))
		})

		It("should not change after Close", func() {
			updates, _ := c.Subscribe()

			fake.Advance(500 * time.Millisecond)
			c.Close()
			c.Close()

			Expect(fake.Pending()).To(BeZero())
			Expect(c.State()).To(Equal(carousel.StateClosed))

			c.Advance()
			c.Retreat()
			Expect(c.GoTo(2)).To(BeFalse())
			c.Resume()
			fake.Advance(time.Minute)

			Expect(c.Index()).To(Equal(0))
			Expect(fake.Pending()).To(BeZero())
			Eventually(updates).Should(BeClosed())
		})
	})

	Describe("wraparound", func() {
		It("should return to the start after n advances", func() {
			for n := 2; n <= 7; n++ {
				items := make([]int, n)
				c := carousel.New(items, time.Second, carousel.WithClock(fake))
				c.GoTo(n / 2)
				for i := 0; i < n; i++ {
					c.Advance()
				}
				Expect(c.Index()).To(Equal(n/2), "n=%d", n)
				c.Close()
			}
		})

		It("should undo an advance with a retreat", func() {
			c := newController([]string{"A", "B", "C", "D"}, time.Second)
			for i := 0; i < 4; i++ {
				c.GoTo(i)
				c.Advance()
				c.Retreat()
				Expect(c.Index()).To(Equal(i))
			}
		})

		It("should keep the index across pause and resume", func() {
			c := newController([]string{"A", "B", "C"}, time.Second)
			c.GoTo(2)
			c.Pause()
			c.Resume()
			Expect(c.Index()).To(Equal(2))
		})
	})

	Context("with no items", func() {
		It("should never schedule a timer", func() {
			c := newController(nil, time.Second)

			Expect(fake.Pending()).To(BeZero())
			Expect(c.Index()).To(Equal(-1))
			Expect(c.State()).To(Equal(carousel.StateIdle))

			c.Pause()
			c.Resume()
			c.Advance()
			c.Retreat()
			Expect(c.GoTo(0)).To(BeFalse())
			fake.Advance(time.Minute)

			Expect(fake.Pending()).To(BeZero())
			Expect(c.Index()).To(Equal(-1))
			Expect(c.Progress()).To(BeZero())

			_, ok := c.Current()
			Expect(ok).To(BeFalse())
		})
	})

	Context("with a single item", func() {
		It("should stay idle", func() {
			c := newController([]string{"only"}, time.Second)

			Expect(c.State()).To(Equal(carousel.StateIdle))
			c.Advance()
			c.Resume()
			fake.Advance(time.Minute)

			Expect(c.Index()).To(BeZero())
			Expect(fake.Pending()).To(BeZero())
		})
	})

	It("should fall back to the default interval", func() {
		c := newController([]string{"A", "B"}, 0)
		Expect(c.Interval()).To(Equal(carousel.DefaultInterval))
	})

	Describe("Subscribe", func() {
		It("should deliver the latest snapshot on change", func() {
			c := newController([]string{"A", "B", "C"}, time.Second)
			updates, cancel := c.Subscribe()

			fake.Advance(time.Second)
			fake.Advance(time.Second)

			var snap carousel.Snapshot
			Eventually(updates).Should(Receive(&snap))
			Expect(snap.Index).To(Equal(2))
			Expect(snap.Progress).To(BeZero())

			c.Pause()
			Eventually(updates).Should(Receive(&snap))
			Expect(snap.Paused).To(BeTrue())

			cancel()
			Eventually(updates).Should(BeClosed())
		})
	})
})
