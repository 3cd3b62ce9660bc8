package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// WriteResultsFile writes results as CSV to path, creating its directory.
func WriteResultsFile(path string, seats int, results []Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer f.Close()

	if err := WriteResults(f, seats, results); err != nil {
		return err
	}
	return f.Close()
}

// WriteResults writes one row per game with a VP column per seat.
func WriteResults(w io.Writer, seats int, results []Result) error {
	writer := csv.NewWriter(w)

	header := []string{"game", "seed", "winner", "winner_difficulty", "turns", "actions", "error"}
	for i := 0; i < seats; i++ {
		header = append(header, fmt.Sprintf("vp_seat%d", i))
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write results header: %w", err)
	}

	for _, r := range results {
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
		}
		row := []string{
			strconv.Itoa(r.Game),
			strconv.FormatUint(r.Seed, 10),
			r.Winner,
			string(r.WinnerDifficulty),
			strconv.Itoa(r.Turns),
			strconv.Itoa(r.Actions),
			errText,
		}
		for i := 0; i < seats; i++ {
			vp := ""
			if i < len(r.VictoryPoints) {
				vp = strconv.Itoa(r.VictoryPoints[i])
			}
			row = append(row, vp)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write result row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
