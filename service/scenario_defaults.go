package service

import (
	"fmt"

	"quickgfe/domain"
)

// DefaultScenario is the scenario a form starts from for a program: a
// typical purchase price, a FICO of DefaultFico and every other field from
// the program defaults, transfer tax derived from the price.
func DefaultScenario(defaults *Defaults, program domain.Program) (domain.ScenarioInput, error) {
	pd, err := defaults.For(program)
	if err != nil {
		return domain.ScenarioInput{}, err
	}
	in, err := Normalize(domain.ScenarioRequest{
		Program:       string(program),
		PurchasePrice: domain.Num(FormPurchasePrice),
		Fico:          domain.Num(DefaultFico),
	}, pd)
	if err != nil {
		// The defaults themselves are out of range.
		return domain.ScenarioInput{}, &domain.ConfigurationGapError{Program: program, Detail: fmt.Sprintf("defaults do not validate: %v", err)}
	}
	return in, nil
}
