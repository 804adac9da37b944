package mcast_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/eyerissv2/mcast"
)

func TestMcast(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Mcast Suite")
}

var _ = Describe("Config", func() {
	It("starts with every route disabled", func() {
		cfg := mcast.New(6, 6)
		Expect(cfg.Valid()).To(BeTrue())

		for s := 0; s < 6; s++ {
			for d := 0; d < 6; d++ {
				Expect(cfg.Path(s, d)).To(BeFalse())
			}
		}
	})

	It("enables a group of destinations for one source", func() {
		cfg := mcast.New(3, 8)
		cfg.GroupEnable(0, 1, 2)

		Expect(cfg.Path(0, 1)).To(BeTrue())
		Expect(cfg.Path(0, 2)).To(BeTrue())
		Expect(cfg.Path(0, 3)).To(BeFalse())
		Expect(cfg.Path(1, 1)).To(BeFalse())
	})

	It("is valid when each destination has at most one source", func() {
		cfg := mcast.New(3, 4)
		cfg.GroupEnable(0, 0)
		cfg.GroupEnable(1, 1, 2)
		cfg.GroupEnable(2, 3)

		Expect(cfg.Valid()).To(BeTrue())
	})

	It("is invalid when two sources drive the same destination", func() {
		cfg := mcast.New(6, 6)
		cfg.GroupEnable(0, 5) // N -> PE
		cfg.GroupEnable(4, 5) // GLB -> PE

		Expect(cfg.Valid()).To(BeFalse())
	})

	It("panics on an out-of-range destination", func() {
		cfg := mcast.New(2, 2)
		Expect(func() { cfg.GroupEnable(0, 5) }).To(Panic())
	})

	It("renders a human-readable matrix", func() {
		cfg := mcast.New(2, 2)
		cfg.GroupEnable(0, 1)

		Expect(cfg.Print()).To(ContainSubstring("dst0"))
		Expect(cfg.Print()).To(ContainSubstring("dst1"))
	})
})
