// Package persistence keeps an append-only jsonl log of experiment runs so
// past results can be compared without rerunning anything. The simulation
// core never touches it.
package persistence

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// RunRecord is one line of the run log: the settings of a run and its
// headline numbers.
type RunRecord struct {
	Time            time.Time `json:"time"`
	Experiment      string    `json:"experiment"`
	Dice            int       `json:"dice"`
	Rolls           int       `json:"rolls"`
	Replications    int       `json:"replications"`
	Jackpots        int       `json:"jackpots"`
	MeanJackpotRate float64   `json:"mean_jackpot_rate"`
	TopCombo        string    `json:"top_combo,omitempty"`
	TopComboCount   int       `json:"top_combo_count,omitempty"`
}

// Store handles append-only storing of the run log.
type Store struct {
	file *os.File
}

// NewStore opens or creates the file at path for appending lines.
func NewStore(path string) (*Store, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}
	return &Store{file: file}, nil
}

// Append marshals one run record onto the jsonl log.
func (s *Store) Append(rec RunRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := s.file.Write(append(data, '\n')); err != nil {
		return err
	}
	return s.file.Sync()
}

// Load replays all jsonl lines and unpacks them into run records.
func (s *Store) Load() ([]RunRecord, error) {
	if _, err := s.file.Seek(0, 0); err != nil {
		return nil, err
	}

	var records []RunRecord
	scanner := bufio.NewScanner(s.file)
	for scanner.Scan() {
		var rec RunRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode run record: %w", err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Close handles safe shutdown.
func (s *Store) Close() error {
	return s.file.Close()
}
