package core

import (
	"context"
	"fmt"
)

type fakeInfo map[string]float64

func (f fakeInfo) GetDouble(key string) (float64, bool) {
	v, ok := f[key]
	return v, ok
}

func (f fakeInfo) SetDouble(key string, value float64) { f[key] = value }

type fakeLedger struct {
	prices  map[string]float64
	demands map[string]float64
	infos   map[string]fakeInfo
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		prices:  make(map[string]float64),
		demands: make(map[string]float64),
		infos:   make(map[string]fakeInfo),
	}
}

func ledgerKey(good, region string, period int) string {
	return fmt.Sprintf("%s/%s/%d", good, region, period)
}

func (l *fakeLedger) setPrice(good string, price float64) {
	l.prices[good] = price
}

func (l *fakeLedger) Price(good, _ string, _ int) (float64, bool) {
	p, ok := l.prices[good]
	return p, ok
}

func (l *fakeLedger) AddToDemand(good, region string, quantity float64, period int) {
	l.demands[ledgerKey(good, region, period)] += quantity
}

func (l *fakeLedger) demand(good, region string, period int) float64 {
	return l.demands[ledgerKey(good, region, period)]
}

func (l *fakeLedger) MarketInfo(good, _ string, _ int) (Info, bool) {
	info, ok := l.infos[good]
	return info, ok
}

type fakeRegistrar struct {
	deps [][2]string
}

func (r *fakeRegistrar) AddDependency(sector, good string) {
	r.deps = append(r.deps, [2]string{sector, good})
}

type fakeStore map[string]*TechnologyParameters

func (s fakeStore) TechnologyParameters(name string, year int) (*TechnologyParameters, bool) {
	p, ok := s[fmt.Sprintf("%s/%d", name, year)]
	return p, ok
}

type constMacro float64

func (m constMacro) ScaledGDPPerCapita(int) float64 { return float64(m) }
func (m constMacro) Population(int) float64         { return float64(m) }

const (
	testRegion = "USA"
	testSector = "electricity"
)

// testModeltime has periods 0, 1, 2 for 1990, 2005, 2020.
var testModeltime = NewModeltime(1990, 15, 3)

// newTestTechnology returns an initialized technology with the given fuel,
// efficiency and non-energy cost, vintage 1990 (period 0).
func newTestTechnology(name, fuel string, efficiency, nonEnergyCost float64) *Technology {
	tech := NewTechnology(name, 1990)
	p := NewTechnologyParameters(name)
	p.FuelName = fuel
	p.Efficiency = efficiency
	p.NonEnergyCost = nonEnergyCost
	tech.SetParameters(p)
	return tech
}

func initTestTechnology(tech *Technology) {
	tech.CompleteInit(context.Background(), testSector, nil, nil, Options{Modeltime: testModeltime})
}
