package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/yigit/coursetracker/internal/pkg/logger"
)

// Mode selects how a statement is run and what its result carries
type Mode int

const (
	// ReadMany collects every row
	ReadMany Mode = iota + 1
	// ReadOne reads the first row only
	ReadOne
	// Write executes a mutation and commits it
	Write
)

func (m Mode) String() string {
	switch m {
	case ReadMany:
		return "readMany"
	case ReadOne:
		return "readOne"
	case Write:
		return "write"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

var (
	// ErrNoRowsAffected marks a write that changed nothing
	ErrNoRowsAffected = errors.New("commit unsuccessful")
	// ErrUnsupportedMode marks a call with an unknown mode
	ErrUnsupportedMode = errors.New("unsupported query mode")
)

var queryTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "coursetracker_db_queries_total",
		Help: "Number of statements run by the query executor",
	},
	[]string{"mode", "status"},
)

var queryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "coursetracker_db_query_duration_seconds",
		Help:    "Latency of statements run by the query executor",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"mode"},
)

// Scanner is the row surface handed to a RowScanner
type Scanner interface {
	Scan(dest ...any) error
}

// RowScanner consumes one result row
type RowScanner func(row Scanner) error

// Result is the outcome of a single executor call
type Result struct {
	// Status is 200 on success, 400 for a write that changed nothing and 500 otherwise
	Status       int
	Found        bool
	RowsAffected int64
	Err          error
}

// OK reports a successful call
func (r Result) OK() bool {
	return r.Status == http.StatusOK
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type txKey struct{}

// Executor runs squirrel statements against the provider's live handle
type Executor struct {
	provider *Provider
}

// NewExecutor creates an executor bound to a provider
func NewExecutor(provider *Provider) *Executor {
	return &Executor{provider: provider}
}

// Dialect returns the dialect of the underlying store
func (e *Executor) Dialect() Dialect {
	return e.provider.Dialect()
}

// Builder returns a statement builder with ? placeholders. Run rebinds them.
func (e *Executor) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// Run executes stmt in the given mode. Rows are passed to scan in order.
// Outside a transaction the connection is checked with EnsureLive first and
// a Write is committed on its own.
func (e *Executor) Run(ctx context.Context, stmt squirrel.Sqlizer, mode Mode, scan RowScanner) (res Result) {
	start := time.Now()
	defer func() {
		queryTotal.WithLabelValues(mode.String(), strconv.Itoa(res.Status)).Inc()
		queryDuration.WithLabelValues(mode.String()).Observe(time.Since(start).Seconds())
		if res.Status == http.StatusInternalServerError {
			logger.Ctx(ctx).Error().Err(res.Err).Str("mode", mode.String()).Msg("Query failed")
		}
	}()

	if mode != ReadMany && mode != ReadOne && mode != Write {
		return Result{Status: http.StatusInternalServerError, Err: fmt.Errorf("%w: %s", ErrUnsupportedMode, mode)}
	}

	query, args, err := stmt.ToSql()
	if err != nil {
		return Result{Status: http.StatusInternalServerError, Err: fmt.Errorf("failed to build query: %w", err)}
	}
	query, err = e.provider.Dialect().Rebind(query)
	if err != nil {
		return Result{Status: http.StatusInternalServerError, Err: fmt.Errorf("failed to rebind query: %w", err)}
	}

	q, err := e.querier(ctx)
	if err != nil {
		return Result{Status: http.StatusInternalServerError, Err: err}
	}

	logger.Ctx(ctx).Debug().Str("mode", mode.String()).Str("query", query).Msg("Running query")

	switch mode {
	case ReadMany:
		return readRows(ctx, q, query, args, scan, false)
	case ReadOne:
		return readRows(ctx, q, query, args, scan, true)
	default:
		return write(ctx, q, query, args)
	}
}

func (e *Executor) querier(ctx context.Context) (querier, error) {
	if tx, ok := TxFromContext(ctx); ok {
		return tx, nil
	}
	if err := e.provider.EnsureLive(ctx); err != nil {
		return nil, err
	}
	return e.provider.DB(), nil
}

func readRows(ctx context.Context, q querier, query string, args []any, scan RowScanner, single bool) Result {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return Result{Status: http.StatusInternalServerError, Err: err}
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		found = true
		if scan != nil {
			if err := scan(rows); err != nil {
				return Result{Status: http.StatusInternalServerError, Err: fmt.Errorf("failed to scan row: %w", err)}
			}
		}
		if single {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return Result{Status: http.StatusInternalServerError, Err: err}
	}

	return Result{Status: http.StatusOK, Found: found}
}

func write(ctx context.Context, q querier, query string, args []any) Result {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return Result{Status: http.StatusInternalServerError, Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Result{Status: http.StatusInternalServerError, Err: err}
	}
	if affected == 0 {
		return Result{Status: http.StatusBadRequest, Err: ErrNoRowsAffected}
	}

	return Result{Status: http.StatusOK, Found: true, RowsAffected: affected}
}

// TxFromContext returns the transaction stored by WithTransaction
func TxFromContext(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return tx, ok && tx != nil
}

// WithTransaction runs fn inside a transaction. Every Run that receives the
// context passed to fn joins it. Nested calls reuse the outer transaction.
func (e *Executor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}

	// Add timeout to context if not already present
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	if err := e.provider.EnsureLive(ctx); err != nil {
		return err
	}

	tx, err := e.provider.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Rollback on panic
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Ctx(ctx).Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("%w (rollback error: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
