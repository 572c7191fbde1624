package ingest

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestReader() *Reader {
	return NewReader(zap.NewNop(), []string{"NA", "-"})
}

func TestReadAllFixedLayout(t *testing.T) {
	input := strings.Join([]string{
		"Account,Sanctioned,Outstanding,2024-01,2024-02,2024-03",
		"ACC1,100000,50000,0,30,",
		"ACC2,200000,,NA,0,45",
	}, "\n")

	accounts, err := newTestReader().ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("ReadAll() returned %d accounts, expected 2", len(accounts))
	}

	acc1 := accounts[0]
	if acc1.AccountID != "ACC1" {
		t.Errorf("AccountID = %s, expected ACC1", acc1.AccountID)
	}
	if acc1.SanctionedAmt != 100000 || acc1.OutstandingBal != 50000 {
		t.Errorf("passthrough = %v/%v, expected 100000/50000", acc1.SanctionedAmt, acc1.OutstandingBal)
	}
	if len(acc1.Observations) != 3 {
		t.Fatalf("ACC1 has %d observations, expected 3", len(acc1.Observations))
	}
	if !acc1.Observations[1].Present || acc1.Observations[1].DPD != 30 {
		t.Errorf("ACC1 2024-02 = %+v, expected present DPD 30", acc1.Observations[1])
	}
	if acc1.Observations[2].Present {
		t.Errorf("ACC1 2024-03 marked present for an empty cell")
	}

	acc2 := accounts[1]
	if acc2.OutstandingBal != 0 {
		t.Errorf("ACC2 outstanding = %v, expected 0 for missing cell", acc2.OutstandingBal)
	}
	if acc2.Observations[0].Present {
		t.Errorf("ACC2 2024-01 marked present for an NA cell")
	}
	if !acc2.Observations[2].Present || acc2.Observations[2].DPD != 45 {
		t.Errorf("ACC2 2024-03 = %+v, expected present DPD 45", acc2.Observations[2])
	}
}

func TestReadAllDetectsMonthColumns(t *testing.T) {
	// Month columns directly after the account id, no passthrough columns.
	input := strings.Join([]string{
		"Account,2024-01,2024-02",
		"ACC1,0,30",
	}, "\n")

	accounts, err := newTestReader().ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(accounts[0].Observations) != 2 {
		t.Errorf("observations = %d, expected 2", len(accounts[0].Observations))
	}
	if accounts[0].SanctionedAmt != 0 {
		t.Errorf("SanctionedAmt = %v, expected 0 with no passthrough columns", accounts[0].SanctionedAmt)
	}
}

func TestReadAllErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name: "malformed DPD cell",
			input: "Account,2024-01\n" +
				"ACC1,abc",
		},
		{
			name: "negative DPD",
			input: "Account,2024-01\n" +
				"ACC1,-5",
		},
		{
			name: "duplicate month column",
			input: "Account,2024-01,2024-01\n" +
				"ACC1,0,0",
		},
		{
			name: "empty account id",
			input: "Account,2024-01\n" +
				",30",
		},
		{
			name: "ragged row",
			input: "Account,2024-01,2024-02\n" +
				"ACC1,0",
		},
		{
			name:  "header only account column",
			input: "Account",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestReader().ReadAll(strings.NewReader(tt.input))
			if err == nil {
				t.Errorf("ReadAll() expected error, got none")
			}
		})
	}
}

func TestReadAllCaseInsensitiveMarkers(t *testing.T) {
	input := "Account,2024-01,2024-02\n" +
		"ACC1,na,0"

	accounts, err := newTestReader().ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if accounts[0].Observations[0].Present {
		t.Errorf("lowercase marker cell marked present")
	}
}

func TestReadAllEmptyFile(t *testing.T) {
	_, err := newTestReader().ReadAll(strings.NewReader(""))
	if err == nil {
		t.Errorf("ReadAll() on empty input expected error, got none")
	}
}
