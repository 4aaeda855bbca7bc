package domain

// LedgerRow is one display row of a computed ledger: the opening
// seed or one posted document, with the running balance after it.
type LedgerRow struct {
	Date      Date   `json:"date"`
	Type      string `json:"type"`
	Reference string `json:"reference,omitempty"`
	Narration string `json:"narration,omitempty"`
	Party     string `json:"party,omitempty"`
	Debit     Amount `json:"debit"`
	Credit    Amount `json:"credit"`
	Balance   Amount `json:"balance"`
}

// LedgerReport is the full ledger for one subject. ClosingBalance is
// the balance of the last row surviving any date/text filter, never a
// re-derived value.
type LedgerReport struct {
	SubjectID      string         `json:"subjectId"`
	SubjectName    string         `json:"subjectName"`
	SubjectKind    string         `json:"subjectKind"`
	Classification Classification `json:"classification,omitempty"`
	Rows           []LedgerRow    `json:"rows"`
	ClosingBalance Amount         `json:"closingBalance"`
}

// TrialBalanceRow is one account's closing position, placed in its
// normal side's column when positive.
type TrialBalanceRow struct {
	AccountID      string         `json:"accountId"`
	Number         string         `json:"accNum,omitempty"`
	Name           string         `json:"accName"`
	Classification Classification `json:"accType"`
	Debit          Amount         `json:"debit"`
	Credit         Amount         `json:"credit"`
}

// TrialBalance lists every account's closing balance as of a date.
type TrialBalance struct {
	AsOf        Date              `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  Amount            `json:"totalDebit"`
	TotalCredit Amount            `json:"totalCredit"`
}
