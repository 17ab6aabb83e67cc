package generator

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/vanshika/fintrace/backend/internal/domain"
)

// WriteCSV serializes transactions into a CSV file matching the ingress
// header transaction_id,sender_id,receiver_id,amount,timestamp.
func WriteCSV(transactions []domain.Transaction, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"transaction_id", "sender_id", "receiver_id", "amount", "timestamp"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range transactions {
		row := []string{
			t.ID,
			t.SenderID,
			t.ReceiverID,
			fmt.Sprintf("%.2f", t.Amount),
			t.Timestamp.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", t.ID, err)
		}
	}
	w.Flush()
	return w.Error()
}
