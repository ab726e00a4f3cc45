package model

import (
	"strings"
	"testing"
)

func TestValidateCompleteRecord(t *testing.T) {
	res := validRecord().Validate()
	if !res.IsValid {
		t.Fatalf("expected valid record, got errors: %v", res.Errors)
	}
	if len(res.Errors) != 0 {
		t.Errorf("valid record should carry no errors, got %v", res.Errors)
	}
}

func TestValidateReportsSingleViolation(t *testing.T) {
	r := validRecord()
	r.Requester = ""

	res := r.Validate()
	if res.IsValid {
		t.Fatal("record with empty requester must be invalid")
	}
	if len(res.Errors) != 1 {
		t.Fatalf("want exactly one error, got %v", res.Errors)
	}
	if !strings.Contains(res.Errors[0], "người đề nghị") {
		t.Errorf("error %q should mention the requester field", res.Errors[0])
	}
}

func TestValidateReportsAllViolationsTogether(t *testing.T) {
	r := validRecord()
	r.Requester = "   "
	r.Vendor = ""

	res := r.Validate()
	if res.IsValid {
		t.Fatal("record must be invalid")
	}
	if len(res.Errors) != 2 {
		t.Fatalf("want both violations reported, got %v", res.Errors)
	}

	joined := strings.Join(res.Errors, "\n")
	if !strings.Contains(joined, "người đề nghị") || !strings.Contains(joined, "Nhà cung cấp") {
		t.Errorf("errors %v should cover requester and vendor", res.Errors)
	}
}

func TestValidateEmptyRecord(t *testing.T) {
	res := (&PaymentRequest{}).Validate()
	if res.IsValid {
		t.Fatal("empty record must be invalid")
	}
	if len(res.Errors) != 6 {
		t.Errorf("want all six rules violated, got %d: %v", len(res.Errors), res.Errors)
	}
}

func TestValidateZeroAmount(t *testing.T) {
	r := validRecord()
	r.Amount = 0

	res := r.Validate()
	if res.IsValid {
		t.Fatal("zero amount must be invalid")
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "Số tiền") {
		t.Errorf("want single amount error, got %v", res.Errors)
	}
}
