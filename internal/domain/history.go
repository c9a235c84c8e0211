package domain

import "time"

// HistoryRecord captures one finished installer run.
type HistoryRecord struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Action     Action    `json:"action"`
	Scope      Scope     `json:"scope"`
	State      RunState  `json:"state"`
	BinaryPath string    `json:"binary_path"`
	DataDir    string    `json:"data_dir"`
	Warnings   int       `json:"warnings"`
}
