package extractor

import "testing"

func TestExtract_Amounts(t *testing.T) {
	e := Extract("Total due: $1,234.56 plus a late fee of $20")
	if len(e.Amounts) != 2 {
		t.Fatalf("expected 2 amounts, got %d: %v", len(e.Amounts), e.Amounts)
	}
	if e.Amounts[0] != "$1,234.56" {
		t.Errorf("expected $1,234.56, got %s", e.Amounts[0])
	}
	if e.Amounts[1] != "$20" {
		t.Errorf("expected $20, got %s", e.Amounts[1])
	}
}

func TestExtract_Dates(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"slash format", "Due on 12/31/2024 at noon", "12/31/2024"},
		{"iso format", "Statement period 2024-01-31", "2024-01-31"},
		{"month name", "Paid on January 5, 2024 in full", "January 5, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Extract(tt.text)
			if len(e.Dates) != 1 {
				t.Fatalf("expected 1 date, got %d: %v", len(e.Dates), e.Dates)
			}
			if e.Dates[0] != tt.want {
				t.Errorf("expected %q, got %q", tt.want, e.Dates[0])
			}
		})
	}
}

func TestExtract_AccountNumbers(t *testing.T) {
	e := Extract("Account 1234-5678-9012-3456 was charged")
	if len(e.AccountNumbers) != 1 {
		t.Fatalf("expected 1 account number, got %d", len(e.AccountNumbers))
	}
	if e.AccountNumbers[0] != "1234-5678-9012-3456" {
		t.Errorf("unexpected account number %q", e.AccountNumbers[0])
	}
}

func TestExtract_Empty(t *testing.T) {
	e := Extract("no entities here")
	if len(e.Amounts) != 0 || len(e.Dates) != 0 || len(e.AccountNumbers) != 0 {
		t.Errorf("expected empty result, got %+v", e)
	}
}
