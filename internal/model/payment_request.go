// Package model defines the payment-request record, its derived fields and
// the rules that decide whether a record is complete enough to print.
package model

import (
	"fmt"
	"math"

	"github.com/nmluan/payreq-pdf/internal/words"
)

// BudgetSource identifies which budget a request draws from.
type BudgetSource string

const (
	BudgetOperating BudgetSource = "Hoạt động"
	BudgetProject   BudgetSource = "Dự án"
)

// ExpensePlanStatus states whether the expense was planned for.
type ExpensePlanStatus string

const (
	PlanWithin  ExpensePlanStatus = "Trong KH"
	PlanOutside ExpensePlanStatus = "Ngoài KH"
)

// Status is the approval state a document is rendered under.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Display returns the Vietnamese label printed for the status.
func (s Status) Display() string {
	switch s {
	case StatusPending:
		return "CHỜ DUYỆT"
	case StatusApproved:
		return "ĐÃ DUYỆT"
	case StatusRejected:
		return "TỪ CHỐI"
	default:
		return "BẢN NHÁP"
	}
}

// LineItem is one row of the payment breakdown table.
type LineItem struct {
	SequenceNumber int     `json:"sequenceNumber"`
	Description    string  `json:"description"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	UnitPrice      float64 `json:"unitPrice"`
	ExtendedAmount int64   `json:"extendedAmount"`
}

// Recalculate re-derives the extended amount from quantity and unit price.
// This is the normal edit path; bulk import sets ExtendedAmount directly.
func (li *LineItem) Recalculate() {
	li.ExtendedAmount = int64(math.Round(li.Quantity * li.UnitPrice))
}

// Attachment is an opaque uploaded file. Attachments never appear on the
// printed document and are stripped before any persistence.
type Attachment struct {
	Name string `json:"name"`
	Data []byte `json:"data,omitempty"`
}

// PaymentRequest is the document record collected by the form layer.
type PaymentRequest struct {
	Number                    string            `json:"number,omitempty"`
	Date                      string            `json:"date"`
	PurchaseRequestNumber     string            `json:"purchaseRequestNumber,omitempty"`
	Requester                 string            `json:"requester"`
	Department                string            `json:"department"`
	BudgetSource              BudgetSource      `json:"budgetSource,omitempty"`
	BudgetLineCode            string            `json:"budgetLineCode,omitempty"`
	ExpensePlanStatus         ExpensePlanStatus `json:"expensePlanStatus,omitempty"`
	PaymentPurpose            string            `json:"paymentPurpose"`
	Vendor                    string            `json:"vendor"`
	Amount                    int64             `json:"amount"`
	AmountInWords             string            `json:"amountInWords,omitempty"`
	DueDate                   string            `json:"dueDate,omitempty"`
	AttachedDocumentReference string            `json:"attachedDocumentReference,omitempty"`
	LineItems                 []LineItem        `json:"lineItems,omitempty"`
	Attachments               []Attachment      `json:"attachments,omitempty"`
}

// Recompute re-derives the aggregate fields. Records that carry line items
// take their amount from the breakdown; records without any keep the amount
// they arrived with, so decoded records that state a bare total survive.
func (r *PaymentRequest) Recompute() {
	if len(r.LineItems) > 0 {
		r.sumLineItems()
		return
	}
	r.spellAmount()
}

// sumLineItems re-derives the amount from the breakdown alone. The sum of an
// empty breakdown is zero, so removing the last row zeroes the document.
// Every line-item mutation funnels through here.
func (r *PaymentRequest) sumLineItems() {
	var total int64
	for i := range r.LineItems {
		total += r.LineItems[i].ExtendedAmount
	}
	r.Amount = total
	r.spellAmount()
}

// spellAmount keeps the words field in step with the amount. A zero or unset
// amount clears it rather than spelling out "Không đồng".
func (r *PaymentRequest) spellAmount() {
	if r.Amount == 0 {
		r.AmountInWords = ""
	} else {
		r.AmountInWords = words.Currency(r.Amount)
	}
}

// AddLine appends a line item and recomputes the aggregates. A zero sequence
// number is assigned the next display position.
func (r *PaymentRequest) AddLine(li LineItem) {
	if li.SequenceNumber == 0 {
		li.SequenceNumber = len(r.LineItems) + 1
	}
	li.Recalculate()
	r.LineItems = append(r.LineItems, li)
	r.sumLineItems()
}

// UpdateLine changes quantity and unit price of the line at index i through
// the normal edit path.
func (r *PaymentRequest) UpdateLine(i int, quantity, unitPrice float64) error {
	if i < 0 || i >= len(r.LineItems) {
		return fmt.Errorf("line item index %d out of range", i)
	}
	r.LineItems[i].Quantity = quantity
	r.LineItems[i].UnitPrice = unitPrice
	r.LineItems[i].Recalculate()
	r.sumLineItems()
	return nil
}

// RemoveLine deletes the line at index i and recomputes the aggregates.
func (r *PaymentRequest) RemoveLine(i int) error {
	if i < 0 || i >= len(r.LineItems) {
		return fmt.Errorf("line item index %d out of range", i)
	}
	r.LineItems = append(r.LineItems[:i], r.LineItems[i+1:]...)
	r.sumLineItems()
	return nil
}

// Sanitized returns a deep copy with the attachments stripped, the shape
// handed to the persistence boundary.
func (r *PaymentRequest) Sanitized() *PaymentRequest {
	c := *r
	c.Attachments = nil
	c.LineItems = make([]LineItem, len(r.LineItems))
	copy(c.LineItems, r.LineItems)
	return &c
}
