package domain

// Classification determines which side of a ledger entry increases an
// account's balance.
type Classification string

const (
	ClassAsset           Classification = "Asset"
	ClassLiability       Classification = "Liability"
	ClassEquity          Classification = "Equity"
	ClassRevenue         Classification = "Revenue"
	ClassExpense         Classification = "Expense"
	ClassCostOfGoodsSold Classification = "Cost of Goods Sold"
)

// Classifications lists every valid account classification.
var Classifications = []Classification{
	ClassAsset,
	ClassLiability,
	ClassEquity,
	ClassRevenue,
	ClassExpense,
	ClassCostOfGoodsSold,
}

// DebitNormal reports whether debits increase the balance for this
// classification. Assets, expenses and cost of goods sold are
// debit-normal; liabilities, equity and revenue are credit-normal.
// Unknown classifications fall back to credit-normal.
func (c Classification) DebitNormal() bool {
	switch c {
	case ClassAsset, ClassExpense, ClassCostOfGoodsSold:
		return true
	}
	return false
}

// Valid reports whether c is one of the known classifications.
func (c Classification) Valid() bool {
	for _, known := range Classifications {
		if c == known {
			return true
		}
	}
	return false
}

// Account is one entry in the chart of accounts. Field names follow the
// collection format produced by earlier exports, so existing data files
// load unchanged.
type Account struct {
	ID                 string         `json:"id"`
	Number             string         `json:"accNum"`
	Name               string         `json:"accName"`
	Classification     Classification `json:"accType"`
	OpeningBalance     Amount         `json:"openingBalance"`
	OpeningBalanceDate Date           `json:"openingBalanceDate"`
	SubAccountOf       string         `json:"subAccountOf,omitempty"`
	Serial             int            `json:"sl,omitempty"`
}
