package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/Madhesh247/Zenfocus/internal/model"
)

// FileName is the suggested download name for exported history.
const FileName = "zenfocus_data.csv"

var header = []string{"Date", "Time", "Mode", "Duration (Minutes)", "Label"}

// WriteCSV renders the full session history, one row per log in the order
// given (newest first from the store).
func WriteCSV(w io.Writer, logs []model.SessionLog) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, entry := range logs {
		ts := time.UnixMilli(entry.Timestamp)
		row := []string{
			ts.Format("1/2/2006"),
			ts.Format("3:04:05 PM"),
			entry.Mode,
			fmt.Sprintf("%.1f", float64(entry.Duration)/60),
			entry.TimerLabel,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
