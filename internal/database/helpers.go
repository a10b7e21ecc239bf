package database

import (
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	sqldb "github.com/jubalh/rip2/internal/database/sqlc"
)

func optionalTime(nt sql.NullTime) time.Time {
	if !nt.Valid {
		return time.Time{}
	}
	return nt.Time
}

func boolToInt64(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

// prefixBounds returns the half-open string range holding every path strictly
// below dir.
func prefixBounds(dir string) (string, string) {
	sep := string(filepath.Separator)
	lower := dir
	if !strings.HasSuffix(lower, sep) {
		lower += sep
	}
	last := lower[len(lower)-1]
	upper := lower[:len(lower)-1] + string(rune(last+1))
	return lower, upper
}

func queriesFromContext(ctx *Context) *sqldb.Queries {
	if ctx == nil {
		return nil
	}
	if ctx.Queries != nil {
		return ctx.Queries
	}
	if ctx.DB == nil {
		return nil
	}
	return sqldb.New(ctx.DB)
}
