package domain

type Contact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Agree     bool   `json:"agree"`
}

// LeadSubmission ties contact details to a quote. QuoteID is currently the
// program key of the quote.
type LeadSubmission struct {
	QuoteID string  `json:"quoteId"`
	Contact Contact `json:"contact"`
}

type LeadReceipt struct {
	ReferenceID string `json:"referenceId"`
}
