package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes one row per fill-up, oldest first
func WriteCSV(w io.Writer, r Report) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(entryHeaders); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range r.Entries {
		if err := writer.Write(entryRow(e)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
