package atmosphere_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/orbitlab/orbitsim/internal/atmosphere"
)

var _ = Describe("Density model", func() {
	var model *atmosphere.Model

	BeforeEach(func() {
		model = atmosphere.NewModel()
	})

	It("clamps negative altitudes to sea level", func() {
		Expect(model.Density(-5000)).To(Equal(model.Density(0)))
		Expect(model.Density(-1)).To(Equal(model.Density(0)))
	})

	It("returns sea-level density at zero altitude", func() {
		Expect(model.Density(0)).To(BeNumerically("~", 1.225, 1e-9))
	})

	It("is zero at and above the atmosphere edge", func() {
		Expect(model.Density(1_000_000)).To(BeZero())
		Expect(model.Density(2_500_000)).To(BeZero())
		Expect(model.Density(1e12)).To(BeZero())
	})

	It("is non-increasing with altitude within each band", func() {
		bands := [][2]float64{
			{0, 11_000}, {11_000, 20_000}, {20_000, 32_000},
			{32_000, 47_000}, {47_000, 51_000}, {51_000, 71_000},
			{71_000, 100_000}, {100_000, 200_000},
			{200_000, 500_000}, {500_000, 1_000_000},
		}
		for _, band := range bands {
			prev := model.Density(band[0])
			for h := band[0] + 500; h < band[1]; h += 500 {
				rho := model.Density(h)
				Expect(rho).To(BeNumerically("<=", prev),
					"density must not increase at h=%.0f", h)
				prev = rho
			}
		}
	})

	It("is always non-negative", func() {
		for h := -10_000.0; h <= 1_200_000; h += 7_300 {
			Expect(model.Density(h)).To(BeNumerically(">=", 0))
		}
	})

	It("memoizes by 100 m bucket", func() {
		// Altitudes within 50 m of the same bucket centre must return
		// bit-identical values.
		a := model.Density(10_449)
		b := model.Density(10_351)
		Expect(a).To(Equal(b))

		c := model.Density(10_551)
		Expect(c).NotTo(Equal(a))
	})

	It("is deterministic across calls", func() {
		first := model.Density(83_000)
		for i := 0; i < 10; i++ {
			Expect(model.Density(83_000)).To(Equal(first))
		}
	})
})

var _ = Describe("FastDensity", func() {
	It("matches the sea-level reference at zero altitude", func() {
		Expect(atmosphere.FastDensity(0)).To(BeNumerically("~", 1.225, 1e-9))
	})

	It("clamps negative altitudes", func() {
		Expect(atmosphere.FastDensity(-100)).To(Equal(atmosphere.FastDensity(0)))
	})

	It("cuts off at the drag ceiling", func() {
		Expect(atmosphere.FastDensity(500_000)).To(BeZero())
		Expect(atmosphere.FastDensity(499_999)).To(BeNumerically(">", 0))
	})

	It("decays monotonically", func() {
		prev := atmosphere.FastDensity(0)
		for h := 1000.0; h < 500_000; h += 1000 {
			rho := atmosphere.FastDensity(h)
			Expect(rho).To(BeNumerically("<", prev))
			prev = rho
		}
	})
})
