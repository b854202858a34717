package e2e

import (
	"context"
	"maps"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/llm-d/technology-share-engine/internal/actuator"
	"github.com/llm-d/technology-share-engine/internal/collector"
	"github.com/llm-d/technology-share-engine/internal/engines/limiter"
	"github.com/llm-d/technology-share-engine/pkg/config"
	"github.com/llm-d/technology-share-engine/pkg/core"
	"github.com/llm-d/technology-share-engine/pkg/solver"
)

// solved is a model after a full run, with its report.
type solved struct {
	model  *solver.Model
	report *collector.Report
}

func solve(name string, opts solver.ModelOptions) solved {
	ctx := context.Background()
	scenario, err := config.LoadScenario(scenarioPath(name))
	Expect(err).NotTo(HaveOccurred())

	model, err := solver.NewModel(ctx, scenario, opts)
	Expect(err).NotTo(HaveOccurred())
	Expect(solver.NewRunner(model, iterations).Run(ctx)).To(Succeed())

	report := collector.NewReport(model.Modeltime)
	for period := range model.Modeltime.Periods() {
		model.Accept(report, period)
	}
	return solved{model: model, report: report}
}

func labels(region, sector, subsector, tech string) map[string]string {
	return map[string]string{
		collector.LabelRegion:     region,
		collector.LabelSector:     sector,
		collector.LabelSubsector:  subsector,
		collector.LabelTechnology: tech,
	}
}

func (s solved) value(quantity collector.Quantity, l map[string]string, period int) float64 {
	series := s.report.Series(quantity, l)
	ExpectWithOffset(1, series).NotTo(BeNil(), "series %s %v", quantity, l)
	v, ok := series.Value(period)
	ExpectWithOffset(1, ok).To(BeTrue(), "period %d of %s %v", period, quantity, l)
	return v
}

var _ = Describe("Reference scenario", Ordered, func() {
	var run solved

	BeforeAll(func() {
		run = solve("reference.yaml", solver.ModelOptions{Calibrate: true})
	})

	It("reproduces the calibrated coal output", func() {
		Expect(run.value(collector.QuantityOutput, withGood(labels("USA", "electricity", "fossil", "coal-plant"), "electricity"), 0)).
			To(BeNumerically("~", 60, 1e-3))
	})

	It("serves every subsector's demand", func() {
		demands := map[string][]float64{
			"fossil":     {100, 130, 160},
			"low-carbon": {20, 30, 45},
		}
		for period := range run.model.Modeltime.Periods() {
			snap := run.report.Snapshot(period)
			for subsector, demand := range demands {
				Expect(snap.Total(collector.QuantityOutput, map[string]string{
					collector.LabelSubsector: subsector,
					collector.LabelGood:      "electricity",
				})).To(BeNumerically("~", demand[period], 1e-6), "subsector %s period %d", subsector, period)
			}
		}
	})

	It("keeps hydro at its fixed output", func() {
		for period := range run.model.Modeltime.Periods() {
			Expect(run.value(collector.QuantityOutput, withGood(labels("USA", "electricity", "low-carbon", "hydro"), "electricity"), period)).
				To(BeNumerically("~", 10, 1e-9))
		}
	})

	It("prices nuclear from the shared 1990 parameters in every period", func() {
		nuclear := labels("USA", "electricity", "low-carbon", "nuclear")
		demand := []float64{20, 30, 45}
		for period := range run.model.Modeltime.Periods() {
			// hydro takes a fixed 10 of the subsector's demand.
			output := demand[period] - 10
			Expect(run.value(collector.QuantityTotalCost, nuclear, period)).
				To(BeNumerically("~", 0.5/0.33+4, 1e-9), "period %d", period)
			Expect(run.value(collector.QuantityShare, nuclear, period)).
				To(BeNumerically("~", output/demand[period], 1e-9), "period %d", period)
			Expect(run.value(collector.QuantityFuelInput, nuclear, period)).
				To(BeNumerically("~", output/0.33, 1e-6), "period %d", period)
		}
	})

	It("captures half the coal CO2 with the 2020 vintage", func() {
		r, ok := run.model.Region("USA")
		Expect(ok).To(BeTrue())
		var coal *core.Technology
		for _, sub := range r.Subsectors() {
			for _, tech := range sub.Technologies(2) {
				if tech.Name() == "coal-plant" {
					coal = tech
				}
			}
		}
		Expect(coal).NotTo(BeNil())
		Expect(coal.Year()).To(Equal(2020))

		released := coal.Emission(core.EmissionKey{Gas: core.CO2, Kind: core.EmissionTotal})
		stored := coal.Emission(core.EmissionKey{Gas: core.CO2, Kind: core.EmissionSequesteredGeologic})
		Expect(released).To(BeNumerically(">", 0))
		Expect(stored).To(BeNumerically("~", released, 1e-9))
	})

	It("records ledger demand equal to the fuel input", func() {
		snap := run.report.Snapshot(1)
		coalInput := snap.Total(collector.QuantityFuelInput, map[string]string{collector.LabelTechnology: "coal-plant"})
		Expect(run.model.Ledger.Demand("coal", "USA", 1)).To(BeNumerically("~", coalInput, 1e-9))
	})
})

var _ = Describe("Carbon tax scenario", Ordered, func() {
	var run solved

	BeforeAll(func() {
		run = solve("carbon-tax.yaml", solver.ModelOptions{Limiter: limiter.ProportionalStrategy})
	})

	It("shifts EU generation from coal to gas as the tax rises", func() {
		gas := labels("EU", "electricity", "thermal", "gas-plant")
		shares := []float64{
			run.value(collector.QuantityShare, gas, 0),
			run.value(collector.QuantityShare, gas, 1),
			run.value(collector.QuantityShare, gas, 2),
		}
		Expect(shares[0]).To(BeNumerically("<", 0.5))
		Expect(shares[1]).To(BeNumerically(">", shares[0]))
		Expect(shares[2]).To(BeNumerically(">", shares[1]))
		Expect(shares[2]).To(BeNumerically(">", 0.5))
	})

	It("leaves untaxed CN shares unchanged", func() {
		gas := labels("CN", "electricity", "thermal", "gas-plant")
		first := run.value(collector.QuantityShare, gas, 0)
		for period := 1; period < 3; period++ {
			Expect(run.value(collector.QuantityShare, gas, period)).To(BeNumerically("~", first, 1e-12))
		}
	})

	It("lowers EU emissions", func() {
		co2 := map[string]string{collector.LabelRegion: "EU", collector.LabelGas: core.CO2}
		Expect(run.report.Snapshot(2).Total(collector.QuantityEmissions, co2)).
			To(BeNumerically("<", run.report.Snapshot(0).Total(collector.QuantityEmissions, co2)))
	})

	It("derives electricity demand from steel", func() {
		for period, steel := range []float64{10, 12, 14} {
			Expect(run.model.Ledger.Demand("electricity", "EU", period)).To(BeNumerically("~", steel/0.8, 1e-9))
		}
		Expect(run.model.Ledger.Demand("electricity", "CN", 0)).To(BeZero())
	})

	It("publishes the electricity price", func() {
		price, ok := run.model.Ledger.Price("electricity", "EU", 2)
		Expect(ok).To(BeTrue())
		Expect(price).To(BeNumerically(">", 0))
	})

	It("writes metrics for both regions", func() {
		metrics, err := actuator.NewMetricsVisitor(actuator.MetricsConfig{Namespace: "techsim"})
		Expect(err).NotTo(HaveOccurred())
		for period := range run.model.Modeltime.Periods() {
			run.model.Accept(metrics, period)
		}

		path := filepath.Join(GinkgoT().TempDir(), "techsim.prom")
		Expect(actuator.WriteTextfile(path, metrics.Registry())).To(Succeed())
		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(And(
			ContainSubstring(`region="EU"`),
			ContainSubstring(`region="CN"`),
			ContainSubstring("techsim_technology_emissions"),
		))
	})
})

var _ = DescribeTable("Limiter strategies on oversubscribed fixed output",
	func(strategy limiter.LimiterStrategy, want float64) {
		ctx := context.Background()
		scenario, err := config.ParseScenario([]byte(`
name: oversubscribed
modeltime:
  years: [2000]
regions:
  - name: USA
    subsectors:
      - sector: electricity
        name: renewables
        demand: [100]
        technologies:
          - name: hydro
            vintages:
              - year: 2000
                fixedOutput: 90
                parameters: {fuelName: renewable}
          - name: wind
            vintages:
              - year: 2000
                fixedOutput: 60
                parameters: {fuelName: renewable}
`))
		Expect(err).NotTo(HaveOccurred())
		model, err := solver.NewModel(ctx, scenario, solver.ModelOptions{Limiter: strategy})
		Expect(err).NotTo(HaveOccurred())
		Expect(solver.NewRunner(model, 1).Run(ctx)).To(Succeed())

		r, _ := model.Region("USA")
		Expect(r.Subsectors()[0].Output(0)).To(BeNumerically("~", want, 1e-9))
	},
	Entry("proportional scales to demand", limiter.ProportionalStrategy, 100.0),
	Entry("pass-through keeps mandates", limiter.PassThroughStrategy, 150.0),
)

func withGood(l map[string]string, good string) map[string]string {
	out := maps.Clone(l)
	out[collector.LabelGood] = good
	return out
}
