// Package ingress turns external transaction representations - a CSV byte
// stream or a pre-parsed JSON batch - into the validated []domain.Transaction
// the forensic core accepts. Validation failures are returned to the caller;
// nothing here ever reaches into the core on a malformed row.
package ingress

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vanshika/fintrace/backend/internal/domain"
)

var csvHeader = []string{"transaction_id", "sender_id", "receiver_id", "amount", "timestamp"}

// ValidationError reports the row and field responsible for a rejected
// transaction, so HTTP handlers can surface a field-level 400 message.
type ValidationError struct {
	Row   int // 1-based, header excluded
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d: field %q: %v", e.Row, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ParseCSV reads a CSV stream with header
// transaction_id,sender_id,receiver_id,amount,timestamp into a validated
// batch of transactions. The first row with a validation failure aborts the
// parse and returns a *ValidationError; no partial batch is returned.
func ParseCSV(r io.Reader) ([]domain.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvHeader)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, col := range csvHeader {
		if i >= len(header) || strings.TrimSpace(header[i]) != col {
			return nil, fmt.Errorf("unexpected csv header, want %v", csvHeader)
		}
	}

	var out []domain.Transaction
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", row+1, err)
		}
		row++

		txn, verr := parseRow(row, record)
		if verr != nil {
			return nil, verr
		}
		out = append(out, txn)
	}
	return out, nil
}

func parseRow(row int, record []string) (domain.Transaction, *ValidationError) {
	id := strings.TrimSpace(record[0])
	sender := strings.TrimSpace(record[1])
	receiver := strings.TrimSpace(record[2])
	amountStr := strings.TrimSpace(record[3])
	tsStr := strings.TrimSpace(record[4])

	if id == "" {
		return domain.Transaction{}, &ValidationError{Row: row, Field: "transaction_id", Err: fmt.Errorf("must not be blank")}
	}
	if sender == "" {
		return domain.Transaction{}, &ValidationError{Row: row, Field: "sender_id", Err: fmt.Errorf("must not be blank")}
	}
	if receiver == "" {
		return domain.Transaction{}, &ValidationError{Row: row, Field: "receiver_id", Err: fmt.Errorf("must not be blank")}
	}

	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		return domain.Transaction{}, &ValidationError{Row: row, Field: "amount", Err: err}
	}
	if amount < 0 {
		return domain.Transaction{}, &ValidationError{Row: row, Field: "amount", Err: fmt.Errorf("must not be negative")}
	}

	ts, err := parseTimestamp(tsStr)
	if err != nil {
		return domain.Transaction{}, &ValidationError{Row: row, Field: "timestamp", Err: err}
	}

	return domain.Transaction{
		ID:         id,
		SenderID:   sender,
		ReceiverID: receiver,
		Amount:     amount,
		Timestamp:  ts,
	}, nil
}

// record is the JSON-file shape accepted for CLI/file ingestion, mirroring
// the teacher's JSON-dataset loading style in cmd/ingest. Timestamp is left
// as a raw value so it can be either an RFC3339 string or a unix-seconds
// number, same as the CSV path.
type record struct {
	ID         string          `json:"id"`
	SenderID   string          `json:"sender_id"`
	ReceiverID string          `json:"receiver_id"`
	Amount     float64         `json:"amount"`
	Timestamp  json.RawMessage `json:"timestamp"`
}

// ParseJSON decodes a batch of pre-parsed transaction records, applying the
// same validation rules as ParseCSV.
func ParseJSON(r io.Reader) ([]domain.Transaction, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode transaction batch: %w", err)
	}

	out := make([]domain.Transaction, 0, len(records))
	for i, rec := range records {
		row := i + 1
		if strings.TrimSpace(rec.ID) == "" {
			return nil, &ValidationError{Row: row, Field: "id", Err: fmt.Errorf("must not be blank")}
		}
		if strings.TrimSpace(rec.SenderID) == "" {
			return nil, &ValidationError{Row: row, Field: "sender_id", Err: fmt.Errorf("must not be blank")}
		}
		if strings.TrimSpace(rec.ReceiverID) == "" {
			return nil, &ValidationError{Row: row, Field: "receiver_id", Err: fmt.Errorf("must not be blank")}
		}
		if rec.Amount < 0 {
			return nil, &ValidationError{Row: row, Field: "amount", Err: fmt.Errorf("must not be negative")}
		}
		ts, err := parseTimestampJSON(rec.Timestamp)
		if err != nil {
			return nil, &ValidationError{Row: row, Field: "timestamp", Err: err}
		}
		out = append(out, domain.Transaction{
			ID:         rec.ID,
			SenderID:   rec.SenderID,
			ReceiverID: rec.ReceiverID,
			Amount:     rec.Amount,
			Timestamp:  ts,
		})
	}
	return out, nil
}

// parseTimestamp accepts the two wire forms §3 promises: an RFC3339
// instant, or unix seconds as a bare integer.
func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("timestamp %q is neither RFC3339 nor unix seconds", s)
}

// parseTimestampJSON accepts the same two forms as parseTimestamp, but from
// a raw JSON value: a quoted RFC3339 string or a bare unix-seconds number.
func parseTimestampJSON(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, fmt.Errorf("must be a valid timestamp")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return parseTimestamp(s)
	}
	var secs int64
	if err := json.Unmarshal(raw, &secs); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("timestamp must be an RFC3339 string or unix seconds, got %q", string(raw))
}
