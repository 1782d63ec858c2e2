package card

import (
	"testing"
	"time"
)

func TestLuhn(t *testing.T) {
	tests := []struct {
		name     string
		number   string
		expected bool
	}{
		{"Valid Visa test number", "4111111111111111", true},
		{"Off by one", "4111111111111112", false},
		{"Valid with spaces", "4111 1111 1111 1111", true},
		{"Valid Mastercard test number", "5555555555554444", true},
		{"Too short", "41111111111", false},
		{"Empty string", "", false},
		{"Letters only", "abcdefghijklmnop", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Luhn(tt.number)
			if got != tt.expected {
				t.Errorf("Luhn(%q) = %v, want %v", tt.number, got, tt.expected)
			}
		})
	}
}

func TestExpiryValid(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		expiry   string
		expected bool
	}{
		{"Future year", "01/28", true},
		{"Current month", "03/26", true},
		{"Previous month", "02/26", false},
		{"Long past", "01/20", false},
		{"Missing slash", "0128", false},
		{"Garbage", "aa/bb", false},
		{"Empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expiryValid(tt.expiry, now)
			if got != tt.expected {
				t.Errorf("expiryValid(%q) = %v, want %v", tt.expiry, got, tt.expected)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	futureExpiry := time.Now().UTC().AddDate(0, 2, 0).Format("01/06")
	valid := Details{
		Number: "4111111111111111",
		Expiry: futureExpiry,
		CVC:    "123",
		Holder: "Jane Doe",
	}
	if errs := valid.Validate(); len(errs) != 0 {
		t.Fatalf("Validate() on valid details = %v, want no errors", errs)
	}

	tests := []struct {
		name    string
		mutate  func(d *Details)
		wantKey string
	}{
		{"Bad checksum", func(d *Details) { d.Number = "4111111111111112" }, "card_number"},
		{"Expired card", func(d *Details) { d.Expiry = "01/20" }, "card_expiry"},
		{"CVC too short", func(d *Details) { d.CVC = "12" }, "card_cvc"},
		{"CVC not numeric", func(d *Details) { d.CVC = "12a" }, "card_cvc"},
		{"Holder with digits", func(d *Details) { d.Holder = "Jane D03" }, "card_holder"},
		{"Holder too short", func(d *Details) { d.Holder = "J" }, "card_holder"},
		{"Missing number", func(d *Details) { d.Number = "" }, "card_number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			errs := d.Validate()
			if len(errs) == 0 {
				t.Fatalf("Validate() = no errors, want error for %s", tt.wantKey)
			}
			if _, ok := errs[tt.wantKey]; !ok {
				t.Errorf("Validate() = %v, want key %q", errs, tt.wantKey)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name     string
		number   string
		expected string
	}{
		{"Plain number", "4111111111111111", "**** **** **** 1111"},
		{"Spaced number", "5555 5555 5555 4444", "**** **** **** 4444"},
		{"Too short to mask", "12", "****"},
		{"Empty", "", "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Details{Number: tt.number}.Summary()
			if got != tt.expected {
				t.Errorf("Summary() = %q, want %q", got, tt.expected)
			}
		})
	}
}
