package domain

// Customer is a party the business sells to. A customer's ledger is
// debit-normal: a positive balance is the amount receivable.
type Customer struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	ProprietorName     string `json:"proprietorName,omitempty"`
	CustomerNumber     string `json:"customerNumber,omitempty"`
	Address            string `json:"address,omitempty"`
	OpeningBalance     Amount `json:"openingBalance"`
	OpeningBalanceDate Date   `json:"openingBalanceDate"`
}

// Vendor is a party the business buys from. A vendor's ledger is
// credit-normal: a positive balance is the amount payable.
type Vendor struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	ProprietorName     string `json:"proprietorName,omitempty"`
	VendorNumber       string `json:"vendorNumber,omitempty"`
	Address            string `json:"address,omitempty"`
	OpeningBalance     Amount `json:"openingBalance"`
	OpeningBalanceDate Date   `json:"openingBalanceDate"`
}
