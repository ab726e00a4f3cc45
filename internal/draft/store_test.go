package draft

import (
	"errors"
	"testing"
	"time"

	"github.com/nmluan/payreq-pdf/internal/model"
)

func testRecord() *model.PaymentRequest {
	return &model.PaymentRequest{
		Date:           "2025-01-01",
		Requester:      "Nguyễn Minh Luân",
		Department:     "Công Nghệ Ứng Dụng",
		PaymentPurpose: "Thanh toán chi phí phần mềm",
		Vendor:         "Công ty TNHH ABC",
		Amount:         100000,
		Attachments:    []model.Attachment{{Name: "invoice.pdf", Data: []byte("%PDF-")}},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStore(time.Hour)

	key := s.Save(testRecord())
	if key == "" {
		t.Fatal("Save must return a key")
	}

	got, err := s.Load(key)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Requester != "Nguyễn Minh Luân" {
		t.Errorf("Requester = %q", got.Requester)
	}
	if got.Attachments != nil {
		t.Error("stored drafts must not carry attachments")
	}
}

func TestLoadUnknownKey(t *testing.T) {
	s := NewStore(time.Hour)

	_, err := s.Load("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load unknown key = %v, want ErrNotFound", err)
	}
}

func TestLoadExpiredDraft(t *testing.T) {
	s := NewStore(time.Hour)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	key := s.Save(testRecord())

	s.now = func() time.Time { return base.Add(2 * time.Hour) }
	if _, err := s.Load(key); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load expired draft = %v, want ErrNotFound", err)
	}

	if s.Len() != 0 {
		t.Error("expired draft must be evicted on load")
	}
}

func TestLoadVersionMismatch(t *testing.T) {
	s := NewStore(time.Hour)

	key := s.Save(testRecord())
	s.items[key].version = "0.9"

	if _, err := s.Load(key); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load with stale version = %v, want ErrNotFound", err)
	}
}

func TestLoadedCopyIsIsolated(t *testing.T) {
	s := NewStore(time.Hour)
	rec := testRecord()
	rec.LineItems = []model.LineItem{{SequenceNumber: 1, Description: "A", ExtendedAmount: 100}}

	key := s.Save(rec)
	first, _ := s.Load(key)
	first.LineItems[0].Description = "mutated"

	second, _ := s.Load(key)
	if second.LineItems[0].Description != "A" {
		t.Error("Load must hand out isolated copies")
	}
}

func TestRemoveAndClear(t *testing.T) {
	s := NewStore(time.Hour)
	key := s.Save(testRecord())

	if !s.Remove(key) {
		t.Error("Remove existing draft should return true")
	}
	if s.Remove(key) {
		t.Error("Remove missing draft should return false")
	}

	s.Save(testRecord())
	s.Save(testRecord())
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", s.Len())
	}
}

func TestListEvictsExpired(t *testing.T) {
	s := NewStore(time.Hour)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	old := s.Save(testRecord())

	s.now = func() time.Time { return base.Add(2 * time.Hour) }
	fresh := s.Save(testRecord())

	infos := s.List()
	if len(infos) != 1 {
		t.Fatalf("List returned %d drafts, want 1", len(infos))
	}
	if infos[0].Key != fresh {
		t.Errorf("List kept %q, want %q", infos[0].Key, fresh)
	}
	if infos[0].ExpiresAt != infos[0].SavedAt.Add(time.Hour) {
		t.Error("ExpiresAt must be SavedAt plus TTL")
	}
	if s.Len() != 1 {
		t.Error("expired draft must be evicted by List")
	}
	_ = old
}

func TestDefaultTTLFallback(t *testing.T) {
	s := NewStore(0)
	if s.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", s.ttl, DefaultTTL)
	}
}
