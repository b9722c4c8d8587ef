package cassandra

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/arloliu/vdba"
	"github.com/arloliu/vdba/adapter/cql"
	"github.com/arloliu/vdba/types"
)

// sessionSource hands the engine the live session and the consistency levels to use.
type sessionSource interface {
	activeSession() (cql.Session, error)
	consistencies() (read, write types.Consistency)
}

// engine executes CQL on behalf of a database handle.
type engine struct {
	source  sessionSource
	logger  types.Logger
	metrics types.MetricsCollector
}

func (e *engine) observe(op types.Operation, start time.Time, err error) {
	e.metrics.IncQueryTotal(op)
	e.metrics.ObserveQueryDuration(op, time.Since(start).Seconds())
	if err != nil {
		e.metrics.IncQueryError(op)
	}
}

// run executes stmt with the write consistency.
func (e *engine) run(ctx context.Context, stmt string, args ...any) error {
	start := time.Now()

	session, err := e.source.activeSession()
	if err != nil {
		return err
	}
	_, write := e.source.consistencies()

	err = session.Query(stmt, args...).Consistency(write).ExecContext(ctx)
	e.observe(types.OpRun, start, err)
	if err != nil {
		e.logger.Warn("statement failed", "statement", stmt, "error", err)
		return &types.ExecutionError{Statement: stmt, Cause: err}
	}

	return nil
}

// eachRow streams rows of stmt, read with the read consistency, to fn until
// fn returns false. Every row is a fresh map.
func (e *engine) eachRow(ctx context.Context, op types.Operation, fn func(vdba.Row) bool, stmt string, args ...any) error {
	start := time.Now()

	session, err := e.source.activeSession()
	if err != nil {
		return err
	}
	read, _ := e.source.consistencies()

	iter := session.Query(stmt, args...).Consistency(read).IterContext(ctx)
	for {
		row := make(vdba.Row)
		if !iter.MapScan(row) {
			break
		}
		if !fn(row) {
			break
		}
	}

	err = iter.Close()
	e.observe(op, start, err)
	if err != nil {
		e.logger.Warn("query failed", "statement", stmt, "error", err)
		return &types.ExecutionError{Statement: stmt, Cause: err}
	}

	return nil
}

// find collects every row of stmt.
func (e *engine) find(ctx context.Context, stmt string, args ...any) (*Result, error) {
	rows := make([]vdba.Row, 0)
	err := e.eachRow(ctx, types.OpFind, func(row vdba.Row) bool {
		rows = append(rows, row)
		return true
	}, stmt, args...)
	if err != nil {
		return nil, err
	}

	return &Result{rows: rows}, nil
}

// findOneFunc calls fn exactly once with the first row of stmt, the error
// if no row arrived, or (nil, nil) when the result is empty.
func (e *engine) findOneFunc(ctx context.Context, fn func(vdba.Row, error), stmt string, args ...any) {
	latch := newRowLatch(fn)

	err := e.eachRow(ctx, types.OpFindOne, func(row vdba.Row) bool {
		latch.deliver(row, nil)
		return false
	}, stmt, args...)

	// No-ops when a row was already delivered.
	latch.deliver(nil, err)
}

func (e *engine) findOne(ctx context.Context, stmt string, args ...any) (vdba.Row, error) {
	var (
		row vdba.Row
		err error
	)
	e.findOneFunc(ctx, func(r vdba.Row, rerr error) {
		row, err = r, rerr
	}, stmt, args...)

	return row, err
}

// rowLatch is a single-assignment slot: the first deliver wins, the rest are dropped.
type rowLatch struct {
	delivered atomic.Bool
	fn        func(vdba.Row, error)
}

func newRowLatch(fn func(vdba.Row, error)) *rowLatch {
	return &rowLatch{fn: fn}
}

// deliver forwards row and err to the callback if nothing was delivered yet.
// It reports whether this call won.
func (l *rowLatch) deliver(row vdba.Row, err error) bool {
	if !l.delivered.CompareAndSwap(false, true) {
		return false
	}
	l.fn(row, err)

	return true
}
