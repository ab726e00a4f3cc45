package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVND(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{"zero", 0, "0 ₫"},
		{"small", 500, "500 ₫"},
		{"thousands", 5000, "5.000 ₫"},
		{"millions", 5000000, "5.000.000 ₫"},
		{"mixed", 1234567, "1.234.567 ₫"},
		{"negative", -1234567, "-1.234.567 ₫"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VND(tt.amount))
		})
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		n    float64
		want string
	}{
		{"integer", 3, "3"},
		{"grouped integer", 1500000, "1.500.000"},
		{"fractional", 2.5, "2,50"},
		{"zero", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Number(tt.n))
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		iso  string
		want string
	}{
		{"calendar date", "2025-01-31", "31/01/2025"},
		{"rfc3339", "2025-01-31T10:30:00Z", "31/01/2025"},
		{"empty", "", ""},
		{"garbage", "not-a-date", ""},
		{"partial", "2025-01", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Date(tt.iso))
		})
	}
}

func TestByteSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 Bytes"},
		{"bytes", 512, "512 Bytes"},
		{"exact kb", 1024, "1 KB"},
		{"fractional kb", 1536, "1.5 KB"},
		{"mb", 2 * 1024 * 1024, "2 MB"},
		{"gb", 3 * 1024 * 1024 * 1024, "3 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ByteSize(tt.bytes))
		})
	}
}
