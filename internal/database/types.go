package database

import "time"

// GraveRecord represents a row in the graves table: one buried item, where
// it came from and where it now rests.
type GraveRecord struct {
	ID           int64
	OriginalPath string
	GravePath    string
	IsDir        bool
	BuriedAt     time.Time
}
