package domain

import "time"

// Collection keys. Every document type persists as its own flat
// collection, matching the export format of the original data files.
const (
	KeyChartOfAccounts = "chartOfAccounts"
	KeyCustomers       = "customers"
	KeyVendors         = "vendors"
	KeyProducts        = "products"
	KeySalesInvoices   = "salesInvoices"
	KeySalesOrders     = "salesOrders"
	KeySalesReturns    = "salesReturns"
	KeyPurchaseBills   = "purchaseBills"
	KeyPurchaseReturns = "purchaseReturns"
	KeyReceipts        = "receipts"
	KeyPayments        = "payments"
	KeyCreditNotes     = "creditNotes"
	KeyDebitNotes      = "debitNotes"
	KeyContraEntries   = "contraEntries"
	KeyManualJournals  = "manualJournals"
)

// DocType identifies a document kind, used as the display label on
// ledger rows and in posted events.
type DocType string

const (
	DocSalesInvoice   DocType = "Sales Invoice"
	DocSalesOrder     DocType = "Sales Order"
	DocSalesReturn    DocType = "Sales Return"
	DocPurchaseBill   DocType = "Purchase Bill"
	DocPurchaseReturn DocType = "Purchase Return"
	DocReceipt        DocType = "Receipt"
	DocPayment        DocType = "Payment"
	DocCreditNote     DocType = "Credit Note"
	DocDebitNote      DocType = "Debit Note"
	DocContraEntry    DocType = "Contra Entry"
	DocManualJournal  DocType = "Journal"
)

// LineItem is one row of an itemized document (invoice, order, bill,
// return). Discount is either a percentage or a flat amount, never
// both. Quantity is expressed in Unit; conversion to base units uses
// the product's unit table.
type LineItem struct {
	ProductID       string `json:"productId"`
	Description     string `json:"description,omitempty"`
	Quantity        Amount `json:"quantity"`
	Unit            string `json:"unit,omitempty"`
	Rate            Amount `json:"rate"`
	DiscountPercent Amount `json:"discountPercent,omitempty"`
	DiscountAmount  Amount `json:"discountAmount,omitempty"`
	Total           Amount `json:"total"`
}

// SalesInvoice records a credit sale to a customer.
type SalesInvoice struct {
	ID            string     `json:"id"`
	Number        string     `json:"number"`
	CustomerID    string     `json:"customerId"`
	Date          Date       `json:"date"`
	Items         []LineItem `json:"items"`
	Subtotal      Amount     `json:"subtotal"`
	TotalDiscount Amount     `json:"totalDiscount"`
	TaxAmount     Amount     `json:"taxAmount"`
	GrandTotal    Amount     `json:"grandTotal"`
	Narration     string     `json:"narration,omitempty"`
}

// SalesOrder is a confirmed order that has not yet been invoiced.
// Orders never post to any ledger.
type SalesOrder struct {
	ID            string     `json:"id"`
	Number        string     `json:"number"`
	CustomerID    string     `json:"customerId"`
	Date          Date       `json:"date"`
	Items         []LineItem `json:"items"`
	Subtotal      Amount     `json:"subtotal"`
	TotalDiscount Amount     `json:"totalDiscount"`
	TaxAmount     Amount     `json:"taxAmount"`
	GrandTotal    Amount     `json:"grandTotal"`
	Narration     string     `json:"narration,omitempty"`
}

// SalesReturn records goods returned by a customer.
type SalesReturn struct {
	ID            string     `json:"id"`
	Number        string     `json:"number"`
	CustomerID    string     `json:"customerId"`
	Date          Date       `json:"date"`
	Items         []LineItem `json:"items"`
	Subtotal      Amount     `json:"subtotal"`
	TotalDiscount Amount     `json:"totalDiscount"`
	TaxAmount     Amount     `json:"taxAmount"`
	GrandTotal    Amount     `json:"grandTotal"`
	Narration     string     `json:"narration,omitempty"`
}

// PurchaseBill records a credit purchase from a vendor.
type PurchaseBill struct {
	ID            string     `json:"id"`
	Number        string     `json:"number"`
	VendorID      string     `json:"vendorId"`
	Date          Date       `json:"date"`
	Items         []LineItem `json:"items"`
	Subtotal      Amount     `json:"subtotal"`
	TotalDiscount Amount     `json:"totalDiscount"`
	TaxAmount     Amount     `json:"taxAmount"`
	GrandTotal    Amount     `json:"grandTotal"`
	Narration     string     `json:"narration,omitempty"`
}

// PurchaseReturn records goods returned to a vendor.
type PurchaseReturn struct {
	ID            string     `json:"id"`
	Number        string     `json:"number"`
	VendorID      string     `json:"vendorId"`
	Date          Date       `json:"date"`
	Items         []LineItem `json:"items"`
	Subtotal      Amount     `json:"subtotal"`
	TotalDiscount Amount     `json:"totalDiscount"`
	TaxAmount     Amount     `json:"taxAmount"`
	GrandTotal    Amount     `json:"grandTotal"`
	Narration     string     `json:"narration,omitempty"`
}

// Receipt records money received from a customer.
type Receipt struct {
	ID           string `json:"id"`
	Number       string `json:"number"`
	ReceivedFrom string `json:"receivedFrom"`
	Date         Date   `json:"date"`
	Amount       Amount `json:"amount"`
	DepositTo    string `json:"depositTo,omitempty"`
	Narration    string `json:"narration,omitempty"`
}

// Payment records money paid to a vendor.
type Payment struct {
	ID        string `json:"id"`
	Number    string `json:"number"`
	PaymentTo string `json:"paymentTo"`
	Date      Date   `json:"date"`
	Amount    Amount `json:"amount"`
	PaidFrom  string `json:"paidFrom,omitempty"`
	Narration string `json:"narration,omitempty"`
}

// CreditNote credits a customer's ledger outside a sales return, e.g.
// a goodwill adjustment. DebitAccount holds the customer id.
type CreditNote struct {
	ID           string `json:"id"`
	Number       string `json:"number"`
	DebitAccount string `json:"debitAccount"`
	Date         Date   `json:"date"`
	Amount       Amount `json:"amount"`
	Narration    string `json:"narration,omitempty"`
}

// DebitNote debits a vendor's ledger outside a purchase return.
// CreditAccount holds the vendor id.
type DebitNote struct {
	ID            string `json:"id"`
	Number        string `json:"number"`
	CreditAccount string `json:"creditAccount"`
	Date          Date   `json:"date"`
	Amount        Amount `json:"amount"`
	Narration     string `json:"narration,omitempty"`
}

// ContraEntry moves money between two of the business's own accounts
// (cash to bank and the like). FromAccount is credited, ToAccount is
// debited.
type ContraEntry struct {
	ID          string `json:"id"`
	Number      string `json:"number"`
	FromAccount string `json:"fromAccount"`
	ToAccount   string `json:"toAccount"`
	Date        Date   `json:"date"`
	Amount      Amount `json:"amount"`
	Narration   string `json:"narration,omitempty"`
}

// JournalLine is one leg of a manual journal. Exactly one of Debit and
// Credit is nonzero.
type JournalLine struct {
	AccountID   string `json:"accountId"`
	Description string `json:"description,omitempty"`
	Debit       Amount `json:"debit"`
	Credit      Amount `json:"credit"`
}

// ManualJournal is a free-form journal entry. It must have at least
// two lines and its debits must equal its credits.
type ManualJournal struct {
	ID        string        `json:"id"`
	Number    string        `json:"number"`
	Date      Date          `json:"date"`
	Narration string        `json:"narration,omitempty"`
	Lines     []JournalLine `json:"lines"`
}

// DocumentPostedEvent is published after a document is accepted and
// persisted.
type DocumentPostedEvent struct {
	DocumentType DocType   `json:"documentType"`
	DocumentID   string    `json:"documentId"`
	Reference    string    `json:"reference"`
	Date         Date      `json:"date"`
	Amount       Amount    `json:"amount"`
	OccurredAt   time.Time `json:"occurredAt"`
}
