package model

import "strings"

// ValidationResult reports every rule a record violates, not just the first.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors,omitempty"`
}

// Validate checks that a record is complete enough to render. Each rule is
// evaluated independently so the caller can surface all messages together.
func (r *PaymentRequest) Validate() ValidationResult {
	var errs []string

	if strings.TrimSpace(r.Requester) == "" {
		errs = append(errs, "Tên người đề nghị không được để trống")
	}
	if strings.TrimSpace(r.Department) == "" {
		errs = append(errs, "Bộ phận không được để trống")
	}
	if strings.TrimSpace(r.PaymentPurpose) == "" {
		errs = append(errs, "Nội dung thanh toán không được để trống")
	}
	if strings.TrimSpace(r.Vendor) == "" {
		errs = append(errs, "Nhà cung cấp không được để trống")
	}
	if r.Amount <= 0 {
		errs = append(errs, "Số tiền phải lớn hơn 0")
	}
	if r.Date == "" {
		errs = append(errs, "Ngày không được để trống")
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
