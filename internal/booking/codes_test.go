package booking

import (
	"strings"
	"testing"
)

const upperHex = "0123456789ABCDEF"

func TestNewBookingCodeShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		pnr, err := NewBookingCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(pnr) != 10 {
			t.Fatalf("pnr %q: length %d, want 10", pnr, len(pnr))
		}
		for _, r := range pnr {
			if !strings.ContainsRune(upperHex, r) {
				t.Fatalf("pnr %q: character %q outside uppercase hex", pnr, r)
			}
		}
	}
}

func TestNewTransactionIDShape(t *testing.T) {
	txn, err := NewTransactionID()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(txn, "TXN") {
		t.Fatalf("transaction id %q missing TXN prefix", txn)
	}
	if len(txn) != 3+16 {
		t.Fatalf("transaction id %q: length %d, want 19", txn, len(txn))
	}
	for _, r := range txn[3:] {
		if !strings.ContainsRune(upperHex, r) {
			t.Fatalf("transaction id %q: character %q outside uppercase hex", txn, r)
		}
	}
}

func TestBookingCodesDoNotRepeat(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		pnr, err := NewBookingCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if seen[pnr] {
			t.Fatalf("pnr %q repeated within 1000 draws", pnr)
		}
		seen[pnr] = true
	}
}
