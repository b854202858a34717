// Package solver drives technologies through the model periods.
//
// A Subsector groups the technologies competing to supply one sector in one
// region. Each pass it prices its technologies, normalizes their logit shares,
// fits fixed output into demand with a limiter strategy, nudges calibrated
// share weights, and dispatches production:
//
//	price := sub.CalcShares(ctx, ledger, region, period) // region is the macro driver
//	err := sub.Supply(ctx, ledger, region, demand, period)
//
// A Model is a scenario built into regions and subsectors that share one
// marketplace, one global parameter store and one dependency graph. Subsectors
// are ordered so producers of a good are priced before its consumers.
//
// The Runner solves periods in order with a fixed number of passes each:
//
//	model, err := solver.NewModel(ctx, scenario, solver.ModelOptions{Calibrate: true})
//	if err != nil {
//	    return err
//	}
//	runner := solver.NewRunner(model, 5)
//	if err := runner.Run(ctx); err != nil {
//	    return err
//	}
//
// Sector prices that the scenario does not set are published as the
// share-weighted cost of the sector's subsectors, and subsectors without an
// exogenous demand serve the demand their consumers registered on the ledger.
// The runner does not clear markets; prices of scenario goods stay as given.
package solver
