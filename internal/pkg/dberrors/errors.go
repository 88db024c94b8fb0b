package dberrors

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Violation classifies constraint failures reported by the store
type Violation int

const (
	ViolationNone Violation = iota
	ViolationUnique
	ViolationForeignKey
	ViolationNotNull
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// MySQL server error numbers
const (
	mysqlDupEntry           = 1062
	mysqlNoReferencedRow    = 1452
	mysqlRowIsReferenced    = 1451
	mysqlNoReferencedRowOld = 1216
	mysqlRowIsReferencedOld = 1217
	mysqlBadNull            = 1048
)

// Classify inspects err (and anything it wraps) for a driver error from
// PostgreSQL, MySQL or SQLite and reports which constraint it violated.
func Classify(err error) Violation {
	if err == nil {
		return ViolationNone
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ViolationUnique
		case pgForeignKeyViolation:
			return ViolationForeignKey
		case pgNotNullViolation:
			return ViolationNotNull
		}
		return ViolationNone
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDupEntry:
			return ViolationUnique
		case mysqlNoReferencedRow, mysqlRowIsReferenced, mysqlNoReferencedRowOld, mysqlRowIsReferencedOld:
			return ViolationForeignKey
		case mysqlBadNull:
			return ViolationNotNull
		}
		return ViolationNone
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return ViolationUnique
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return ViolationForeignKey
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return ViolationNotNull
		}
		// Older builds report the primary code only
		msg := liteErr.Error()
		switch {
		case strings.Contains(msg, "UNIQUE constraint failed"):
			return ViolationUnique
		case strings.Contains(msg, "FOREIGN KEY constraint failed"):
			return ViolationForeignKey
		case strings.Contains(msg, "NOT NULL constraint failed"):
			return ViolationNotNull
		}
	}

	return ViolationNone
}

// IsUniqueViolation reports whether err is a duplicate-key error
func IsUniqueViolation(err error) bool {
	return Classify(err) == ViolationUnique
}

// IsReferenceViolation reports whether err was caused by a missing referenced
// row, either through a foreign key or a sub-select resolving to NULL.
func IsReferenceViolation(err error) bool {
	v := Classify(err)
	return v == ViolationForeignKey || v == ViolationNotNull
}
