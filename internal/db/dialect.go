package db

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/coursetracker/internal/config"
)

// Dialect captures the few SQL differences between the supported stores
type Dialect struct {
	Name        string
	Placeholder squirrel.PlaceholderFormat

	concat func(parts []string) string
	agg    func(expr, orderBy string) string
}

var (
	// Postgres dialect
	Postgres = Dialect{
		Name:        config.DriverPostgres,
		Placeholder: squirrel.Dollar,
		concat:      pipeConcat,
		agg: func(expr, orderBy string) string {
			return fmt.Sprintf("string_agg(%s, ', ' ORDER BY %s)", expr, orderBy)
		},
	}

	// MySQL dialect
	MySQL = Dialect{
		Name:        config.DriverMySQL,
		Placeholder: squirrel.Question,
		concat: func(parts []string) string {
			return "CONCAT(" + strings.Join(parts, ", ") + ")"
		},
		agg: func(expr, orderBy string) string {
			return fmt.Sprintf("GROUP_CONCAT(%s ORDER BY %s SEPARATOR ', ')", expr, orderBy)
		},
	}

	// SQLite dialect
	SQLite = Dialect{
		Name:        config.DriverSQLite,
		Placeholder: squirrel.Question,
		concat:      pipeConcat,
		agg: func(expr, orderBy string) string {
			return fmt.Sprintf("group_concat(%s, ', ' ORDER BY %s)", expr, orderBy)
		},
	}
)

// DialectFor returns the dialect of a configured driver
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case config.DriverPostgres:
		return Postgres, nil
	case config.DriverMySQL:
		return MySQL, nil
	case config.DriverSQLite:
		return SQLite, nil
	}
	return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
}

// Concat joins SQL expressions into one string expression. The result is NULL
// when any part is NULL.
func (d Dialect) Concat(parts ...string) string {
	return d.concat(parts)
}

// StringAgg aggregates expr over a group into a ", " separated list ordered by orderBy
func (d Dialect) StringAgg(expr, orderBy string) string {
	return d.agg(expr, orderBy)
}

// Rebind rewrites ? placeholders into the dialect's format
func (d Dialect) Rebind(query string) (string, error) {
	return d.Placeholder.ReplacePlaceholders(query)
}

func pipeConcat(parts []string) string {
	return strings.Join(parts, " || ")
}
