// Package config defines the scenario document that describes a model run.
//
// A scenario is a YAML document with the model periods, the shared global
// technology parameters, and one entry per region holding its macro drivers,
// exogenous prices, fuel market counters, and subsectors of competing
// technology vintages.
//
// Example document:
//
//	name: reference
//	modeltime:
//	  startYear: 1990
//	  timeStep: 15
//	  periods: 3
//	regions:
//	  - name: USA
//	    gdpPerCapita: [1.0, 1.2, 1.5]
//	    prices:
//	      - good: gas
//	        values: [3.0, 3.5, 4.0]
//	    subsectors:
//	      - sector: electricity
//	        name: fossil
//	        demand: [100, 120, 150]
//	        technologies:
//	          - name: gas-plant
//	            vintages:
//	              - year: 1990
//	                parameters:
//	                  fuelName: gas
//	                  efficiency: 0.45
//	                  nonEnergyCost: 1.2
//
// Example usage:
//
//	scenario, err := config.LoadScenario(path)
//	if err != nil {
//	    return fmt.Errorf("loading scenario: %w", err)
//	}
//	tech := scenario.Regions[0].Subsectors[0].Technologies[0].Vintages[0].Build("gas-plant")
//
// Validation happens on load: struct tags checked with go-playground/validator
// cover required fields and ranges, and Validate adds the cross-field rules
// (per-period series lengths, vintage years on the model time, unique names).
package config
