// Package core implements the per-period economics of a single technology
// vintage: cost, logit share, fixed-output and calibration reconciliation,
// production, and emissions bookkeeping.
//
// The package contains the domain types a subsector drives each period:
//
//   - Technology: one vintage of one technology choice, the unit a subsector iterates over
//   - TechnologyParameters: efficiency, non-energy cost, fuel and multipliers, owned or shared
//   - CalibrationTarget: historical input or output the technology is tuned to reproduce
//   - OutputChannel: primary and secondary (by-product) outputs
//   - EmissionSource: per-gas emissions and their cost
//
// A technology never reads the state of its siblings. Everything that spans a
// subsector, such as share normalization and fixed-output totals, is passed
// in by the caller. The per-period cycle is:
//
//	tech.InitCalc(ctx, ledger, demographics, region, sector, period)
//	tech.CalcCost(ctx, ledger, region, sector, period)
//	tech.CalcShare(ctx, region, sector, macro, period)
//	tech.NormShare(sum)                                  // by the subsector
//	tech.AdjShares(demand, fixedTotal, variableTotal, period)
//	tech.Production(ctx, ledger, region, sector, demand, macro, period)
//	tech.CalcEmission(sector, period)
//
// CompleteInit must run once per model run, after any cloning, before the
// first period.
//
// Collaborators such as the price ledger, the shared parameter store, and the
// macro drivers are interfaces defined here and implemented elsewhere.
package core
