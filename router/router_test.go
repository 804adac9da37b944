package router_test

import (
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/eyerissv2/kernel"
	"github.com/sarchlab/eyerissv2/router"
)

func TestRouter(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Router Suite")
}

func newWiredRouter(name string, engine sim.Engine) *router.Router[int] {
	r := router.New[int](name, engine, 1*sim.GHz)

	for d := 0; d < router.NumDirections; d++ {
		r.BindIn(router.Direction(d), kernel.NewFIFO[int](name+".in", 4))
		r.BindOut(router.Direction(d), kernel.NewFIFO[int](name+".out", 4))
	}

	return r
}

var _ = Describe("Router", func() {
	var (
		engine sim.Engine
		r      *router.Router[int]
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		r = newWiredRouter("Router", engine)
	})

	tick := func(n int) {
		for i := 0; i < n; i++ {
			r.Tick(0)
		}
	}

	It("forwards GLB to PE in exactly 3 cycles", func() {
		cfg := router.NewConfig()
		cfg.GroupEnable(int(router.GLB), int(router.PE))
		r.SetConfig(cfg)

		in := kernel.NewFIFO[int]("in", 4)
		out := kernel.NewFIFO[int]("out", 4)
		r.BindIn(router.GLB, in)
		r.BindOut(router.PE, out)
		r.SetConfig(cfg)

		in.TryWrite(100)

		tick(2)
		_, ok := out.TryRead()
		Expect(ok).To(BeFalse(), "token must not appear before cycle 3")

		tick(1)
		v, ok := out.TryRead()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(100))
	})

	It("rejects a routing matrix with two sources driving the same destination", func() {
		cfg := router.NewConfig()
		cfg.GroupEnable(int(router.N), int(router.PE))
		cfg.GroupEnable(int(router.GLB), int(router.PE))

		Expect(func() { r.SetConfig(cfg) }).To(PanicWith(BeAssignableToTypeOf(&kernel.ConfigError{})))
	})

	It("stalls only the port whose destination is full, not the whole router", func() {
		cfg := router.NewConfig()
		cfg.GroupEnable(int(router.GLB), int(router.PE))
		cfg.GroupEnable(int(router.N), int(router.E))
		r.SetConfig(cfg)

		glbIn := kernel.NewFIFO[int]("glbIn", 4)
		peOut := kernel.NewFIFO[int]("peOut", 1)
		nIn := kernel.NewFIFO[int]("nIn", 4)
		eOut := kernel.NewFIFO[int]("eOut", 4)
		r.BindIn(router.GLB, glbIn)
		r.BindOut(router.PE, peOut)
		r.BindIn(router.N, nIn)
		r.BindOut(router.E, eOut)
		r.SetConfig(cfg)

		glbIn.TryWrite(1)
		glbIn.TryWrite(2) // second token: peOut has depth 1, will back up

		tick(4)

		_, ok := peOut.Peek()
		Expect(ok).To(BeTrue())
		Expect(glbIn.NumFree()).To(Equal(4), "the GLB port has taken the second token off glbIn and holds it behind the full out[PE]")

		nIn.TryWrite(42)
		tick(3)
		v, ok := eOut.TryRead()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(42), "the N port keeps making progress despite GLB being stalled")
	})

	It("reports a genuine deadlock when a destination never drains", func() {
		cfg := router.NewConfig()
		cfg.GroupEnable(int(router.GLB), int(router.PE))
		r.SetConfig(cfg)

		glbIn := kernel.NewFIFO[int]("glbIn", 4)
		peOut := kernel.NewFIFO[int]("peOut", 1)
		r.BindIn(router.GLB, glbIn)
		r.BindOut(router.PE, peOut)
		r.SetConfig(cfg)

		glbIn.TryWrite(1)
		peOut.TryWrite(99) // fill peOut and never drain it: GLB's forward can never land

		monitor := kernel.NewDeadlockMonitor(kernel.LogSink{}, 5, r.BlockedProbes()...)
		_, err := kernel.Run(r, monitor, 1000)

		Expect(err).NotTo(BeNil())
		found := false
		for _, b := range err.Blocked {
			if strings.Contains(b, "out["+router.PE.String()+"]") {
				found = true
			}
		}
		Expect(found).To(BeTrue(), "deadlock report should name the full out[PE] endpoint, got %v", err.Blocked)
	})
})
