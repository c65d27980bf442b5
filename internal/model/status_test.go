package model

import "testing"

func TestParseBookingStatus(t *testing.T) {
	for _, s := range []string{"confirmed", "pending", "cancelled", "completed"} {
		got, ok := ParseBookingStatus(s)
		if !ok || string(got) != s {
			t.Fatalf("ParseBookingStatus(%q) = %q, %v", s, got, ok)
		}
	}
	if _, ok := ParseBookingStatus("tentative"); ok {
		t.Fatal("tentative should not parse")
	}
	if _, ok := ParseBookingStatus("Confirmed"); ok {
		t.Fatal("status values are case-sensitive")
	}
}

func TestParsePaymentMethod(t *testing.T) {
	for _, s := range []string{"credit_card", "debit_card", "upi", "net_banking"} {
		if _, ok := ParsePaymentMethod(s); !ok {
			t.Fatalf("ParsePaymentMethod(%q) rejected", s)
		}
	}
	if _, ok := ParsePaymentMethod("cash"); ok {
		t.Fatal("cash should not parse")
	}
}

func TestParseTrainStatus(t *testing.T) {
	for _, s := range []string{"scheduled", "delayed", "cancelled", "completed"} {
		if _, ok := ParseTrainStatus(s); !ok {
			t.Fatalf("ParseTrainStatus(%q) rejected", s)
		}
	}
	if _, ok := ParseTrainStatus("levitating"); ok {
		t.Fatal("unknown status should not parse")
	}
}
