package sqldb

import "database/sql"

// Grave mirrors a row of the graves table.
type Grave struct {
	ID           int64
	OriginalPath string
	GravePath    string
	IsDir        int64
	BuriedAt     sql.NullTime
}
