package ingress

import (
	"strings"
	"testing"
	"time"
)

const validCSV = `transaction_id,sender_id,receiver_id,amount,timestamp
T1,A,B,100.50,2024-01-01T00:00:00Z
T2,B,C,50,2024-01-01T01:00:00Z
`

func TestParseCSV_ValidBatch(t *testing.T) {
	txs, err := ParseCSV(strings.NewReader(validCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if txs[0].ID != "T1" || txs[0].SenderID != "A" || txs[0].ReceiverID != "B" {
		t.Errorf("unexpected first row: %+v", txs[0])
	}
	if txs[0].Amount != 100.50 {
		t.Errorf("expected amount 100.50, got %v", txs[0].Amount)
	}
}

func TestParseCSV_SelfLoopAccepted(t *testing.T) {
	csv := `transaction_id,sender_id,receiver_id,amount,timestamp
T1,A,A,10,2024-01-01T00:00:00Z
`
	txs, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("self-loop row must be accepted, got error: %v", err)
	}
	if len(txs) != 1 || txs[0].SenderID != txs[0].ReceiverID {
		t.Fatalf("expected one self-loop transaction, got %+v", txs)
	}
}

func TestParseCSV_DuplicateIDsNotDeduplicated(t *testing.T) {
	csv := `transaction_id,sender_id,receiver_id,amount,timestamp
T1,A,B,10,2024-01-01T00:00:00Z
T1,A,B,10,2024-01-01T01:00:00Z
`
	txs, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected both duplicate-id rows counted, got %d", len(txs))
	}
}

func TestParseCSV_NegativeAmountRejected(t *testing.T) {
	csv := `transaction_id,sender_id,receiver_id,amount,timestamp
T1,A,B,-5,2024-01-01T00:00:00Z
`
	_, err := ParseCSV(strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected an error for a negative amount")
	}
	var verr *ValidationError
	if !asValidationError(err, &verr) {
		t.Fatalf("expected a *ValidationError, got %T: %v", err, err)
	}
	if verr.Field != "amount" {
		t.Errorf("expected field 'amount', got %q", verr.Field)
	}
}

func TestParseCSV_NonNumericAmountRejected(t *testing.T) {
	csv := `transaction_id,sender_id,receiver_id,amount,timestamp
T1,A,B,not-a-number,2024-01-01T00:00:00Z
`
	if _, err := ParseCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("expected an error for a non-numeric amount")
	}
}

func TestParseCSV_UnixSecondsTimestampAccepted(t *testing.T) {
	csv := `transaction_id,sender_id,receiver_id,amount,timestamp
T1,A,B,10,1704067200
`
	txs, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unix-seconds timestamp must be accepted, got error: %v", err)
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !txs[0].Timestamp.Equal(want) {
		t.Errorf("expected timestamp %v, got %v", want, txs[0].Timestamp)
	}
}

func TestParseCSV_UnparsableTimestampRejected(t *testing.T) {
	csv := `transaction_id,sender_id,receiver_id,amount,timestamp
T1,A,B,10,not-a-timestamp
`
	if _, err := ParseCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("expected an error for an unparsable timestamp")
	}
}

func TestParseCSV_BlankIDRejected(t *testing.T) {
	csv := `transaction_id,sender_id,receiver_id,amount,timestamp
,A,B,10,2024-01-01T00:00:00Z
`
	if _, err := ParseCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("expected an error for a blank transaction id")
	}
}

func TestParseCSV_WrongHeaderRejected(t *testing.T) {
	csv := `id,from,to,amount,timestamp
T1,A,B,10,2024-01-01T00:00:00Z
`
	if _, err := ParseCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("expected an error for a mismatched header")
	}
}

func TestParseJSON_ValidBatch(t *testing.T) {
	body := `[{"id":"T1","sender_id":"A","receiver_id":"B","amount":10,"timestamp":"2024-01-01T00:00:00Z"}]`
	txs, err := ParseJSON(strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 1 || txs[0].ID != "T1" {
		t.Fatalf("unexpected result: %+v", txs)
	}
}

func TestParseJSON_NegativeAmountRejected(t *testing.T) {
	body := `[{"id":"T1","sender_id":"A","receiver_id":"B","amount":-1,"timestamp":"2024-01-01T00:00:00Z"}]`
	if _, err := ParseJSON(strings.NewReader(body)); err == nil {
		t.Fatal("expected an error for a negative amount")
	}
}

func TestParseJSON_UnixSecondsTimestampAccepted(t *testing.T) {
	body := `[{"id":"T1","sender_id":"A","receiver_id":"B","amount":10,"timestamp":1704067200}]`
	txs, err := ParseJSON(strings.NewReader(body))
	if err != nil {
		t.Fatalf("unix-seconds timestamp must be accepted, got error: %v", err)
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !txs[0].Timestamp.Equal(want) {
		t.Errorf("expected timestamp %v, got %v", want, txs[0].Timestamp)
	}
}

func TestParseJSON_UnparsableTimestampRejected(t *testing.T) {
	body := `[{"id":"T1","sender_id":"A","receiver_id":"B","amount":10,"timestamp":"not-a-timestamp"}]`
	if _, err := ParseJSON(strings.NewReader(body)); err == nil {
		t.Fatal("expected an error for an unparsable timestamp")
	}
}

func asValidationError(err error, target **ValidationError) bool {
	if verr, ok := err.(*ValidationError); ok {
		*target = verr
		return true
	}
	return false
}
