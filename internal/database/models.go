package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SkippedLine is a line of an uploaded file that did not produce a platform.
type SkippedLine struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// SkippedLines serializes to/from JSON in SQLite.
type SkippedLines []SkippedLine

func (s SkippedLines) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *SkippedLines) Scan(src any) error {
	if src == nil {
		*s = nil
		return nil
	}
	var bytes []byte
	switch v := src.(type) {
	case string:
		bytes = []byte(v)
	case []byte:
		bytes = v
	default:
		return fmt.Errorf("unsupported type for SkippedLines: %T", src)
	}
	return json.Unmarshal(bytes, s)
}

// Upload records one platform file upload. Platform data itself is never
// persisted, only what happened to the file.
type Upload struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Filename  string       `json:"filename"`
	Lines     int          `json:"lines"`
	Loaded    int          `json:"loaded"`
	Skipped   SkippedLines `gorm:"type:json" json:"skipped"`
	CreatedAt time.Time    `json:"created_at"`
}
