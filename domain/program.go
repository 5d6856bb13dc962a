package domain

import "fmt"

type Program string

const (
	ProgramConventional Program = "conventional"
	ProgramFHA          Program = "fha"
	ProgramVA           Program = "va"
)

// Programs lists the supported loan programs in display order.
var Programs = []Program{ProgramConventional, ProgramFHA, ProgramVA}

// ParseProgram accepts only canonical program tags. Slug cleanup belongs to
// the routing layer.
func ParseProgram(s string) (Program, error) {
	switch p := Program(s); p {
	case ProgramConventional, ProgramFHA, ProgramVA:
		return p, nil
	}
	return "", fmt.Errorf("unknown program %q", s)
}

type LoanPurpose string

const (
	LoanPurposePurchase  LoanPurpose = "purchase"
	LoanPurposeRefinance LoanPurpose = "refinance"
)
