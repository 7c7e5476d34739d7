package carousel_test

import (
	"sync"
	"time"

	"github.com/Edgar-mwila/portfolio/internal/carousel"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Controller on the real clock", func() {
	It("should advance by itself and stop after Close", func() {
		c := carousel.New([]string{"A", "B"}, 50*time.Millisecond)

		Eventually(c.Index, time.Second, 5*time.Millisecond).Should(Equal(1))

		c.Close()
		index := c.Index()
		Consistently(c.Index, 100*time.Millisecond, 10*time.Millisecond).Should(Equal(index))
	})

	It("should tolerate concurrent navigation", func() {
		c := carousel.New([]int{1, 2, 3, 4, 5}, time.Millisecond)
		defer c.Close()

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer GinkgoRecover()
				defer wg.Done()

				for j := 0; j < 100; j++ {
					switch (i + j) % 5 {
					case 0:
						c.Advance()
					case 1:
						c.Retreat()
					case 2:
						c.GoTo(j % 5)
					case 3:
						c.Pause()
					default:
						c.Resume()
					}
					p := c.Progress()
					Expect(p).To(BeNumerically(">=", 0))
					Expect(p).To(BeNumerically("<=", 1))
				}
			}(i)
		}
		wg.Wait()

		Expect(c.Index()).To(BeNumerically(">=", 0))
		Expect(c.Index()).To(BeNumerically("<", 5))
	})
})
