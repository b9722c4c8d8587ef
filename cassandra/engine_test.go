package cassandra

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/vdba"
	"github.com/arloliu/vdba/test/testutil"
	"github.com/arloliu/vdba/types"
)

const selectUsers = "SELECT id, name FROM users"

func userRows() []map[string]any {
	return []map[string]any{
		{"id": 1, "name": "ada"},
		{"id": 2, "name": "grace"},
		{"id": 3, "name": "linus"},
	}
}

func TestRunUsesWriteConsistency(t *testing.T) {
	cluster := testutil.NewMockCluster()
	conn := newTestConnection(t, cluster, &vdba.Config{
		Database:         "shop",
		ReadConsistency:  "one",
		WriteConsistency: "all",
	})
	require.NoError(t, conn.Open(context.Background()))
	defer conn.Close()

	stmt := "INSERT INTO users (id, name) VALUES (?, ?)"
	require.NoError(t, conn.Database().Run(context.Background(), stmt, 7, "ken"))

	q := cluster.LastSession().LastQuery()
	require.NotNil(t, q)
	assert.Equal(t, stmt, q.Statement())
	assert.Equal(t, []any{7, "ken"}, q.Values())
	assert.Equal(t, types.All, q.GetConsistency())
	assert.True(t, q.Executed())
}

func TestRunFailure(t *testing.T) {
	stmt := "INSERT INTO users (id) VALUES (?)"
	cause := errors.New("Cannot achieve consistency level ALL")
	cluster := testutil.NewMockCluster().SetExecError(stmt, cause)
	collector := testutil.NewTestMetricsCollector()
	db, _ := openTestDatabase(t, cluster, WithMetrics(collector))

	err := db.Run(context.Background(), stmt, 1)
	require.ErrorIs(t, err, types.ErrExecution)
	require.ErrorIs(t, err, cause)

	var execErr *types.ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, stmt, execErr.Statement)

	assert.Equal(t, int64(1), collector.GetQueryTotal(types.OpRun))
	assert.Equal(t, int64(1), collector.GetQueryErrors(types.OpRun))
}

func TestFindUsesReadConsistency(t *testing.T) {
	cluster := testutil.NewMockCluster().SetRows(selectUsers, userRows()...)
	conn := newTestConnection(t, cluster, &vdba.Config{
		Database:         "shop",
		ReadConsistency:  "localOne",
		WriteConsistency: "all",
	})
	require.NoError(t, conn.Open(context.Background()))
	defer conn.Close()

	res, err := conn.Database().Find(context.Background(), selectUsers)
	require.NoError(t, err)
	require.Equal(t, 3, res.Len())
	assert.Equal(t, "ada", res.Rows()[0]["name"])
	assert.Equal(t, "linus", res.Rows()[2]["name"])

	q := cluster.LastSession().LastQuery()
	assert.Equal(t, types.LocalOne, q.GetConsistency())
	assert.True(t, q.Iter().IsClosed())
}

func TestFindEmpty(t *testing.T) {
	db, _ := openTestDatabase(t, testutil.NewMockCluster())

	res, err := db.Find(context.Background(), selectUsers)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Len())
	assert.NotNil(t, res.Rows())
}

func TestFindFailure(t *testing.T) {
	cause := errors.New("unconfigured table users")
	cluster := testutil.NewMockCluster().SetIterError(selectUsers, cause)
	db, _ := openTestDatabase(t, cluster)

	res, err := db.Find(context.Background(), selectUsers)
	require.Nil(t, res)
	require.ErrorIs(t, err, types.ErrExecution)
	require.ErrorIs(t, err, cause)
}

func TestFindOneReturnsFirstRowAndStops(t *testing.T) {
	cluster := testutil.NewMockCluster().SetRows(selectUsers, userRows()...)
	db, session := openTestDatabase(t, cluster)

	row, err := db.FindOne(context.Background(), selectUsers)
	require.NoError(t, err)
	assert.Equal(t, "ada", row["name"])

	iter := session.LastQuery().Iter()
	assert.Equal(t, 1, iter.Consumed(), "iteration stops after the first row")
	assert.True(t, iter.IsClosed())
}

func TestFindOneEmpty(t *testing.T) {
	db, _ := openTestDatabase(t, testutil.NewMockCluster())

	row, err := db.FindOne(context.Background(), selectUsers)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestFindOneErrorWithoutRows(t *testing.T) {
	cause := errors.New("read timeout")
	cluster := testutil.NewMockCluster().SetIterError(selectUsers, cause)
	db, _ := openTestDatabase(t, cluster)

	row, err := db.FindOne(context.Background(), selectUsers)
	assert.Nil(t, row)
	require.ErrorIs(t, err, cause)
}

func TestFindOneIgnoresErrorAfterRow(t *testing.T) {
	cluster := testutil.NewMockCluster().
		SetRows(selectUsers, userRows()...).
		SetIterError(selectUsers, errors.New("read timeout on page 2"))
	db, _ := openTestDatabase(t, cluster)

	row, err := db.FindOne(context.Background(), selectUsers)
	require.NoError(t, err)
	assert.Equal(t, 1, row["id"])
}

func TestFindOneFuncCalledOnce(t *testing.T) {
	tests := []struct {
		name    string
		cluster func() *testutil.MockCluster
		wantRow bool
		wantErr bool
	}{
		{"rows", func() *testutil.MockCluster { return testutil.NewMockCluster().SetRows(selectUsers, userRows()...) }, true, false},
		{"empty", testutil.NewMockCluster, false, false},
		{"error", func() *testutil.MockCluster {
			return testutil.NewMockCluster().SetIterError(selectUsers, errors.New("boom"))
		}, false, true},
		{"row then error", func() *testutil.MockCluster {
			return testutil.NewMockCluster().
				SetRows(selectUsers, userRows()...).
				SetIterError(selectUsers, errors.New("boom"))
		}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, _ := openTestDatabase(t, tt.cluster())

			var (
				calls  int
				gotRow vdba.Row
				gotErr error
			)
			db.FindOneFunc(context.Background(), func(row vdba.Row, err error) {
				calls++
				gotRow, gotErr = row, err
			}, selectUsers)

			assert.Equal(t, 1, calls)
			assert.Equal(t, tt.wantRow, gotRow != nil)
			assert.Equal(t, tt.wantErr, gotErr != nil)
		})
	}
}

func TestEach(t *testing.T) {
	cluster := testutil.NewMockCluster().SetRows(selectUsers, userRows()...)
	db, session := openTestDatabase(t, cluster)

	var rows []vdba.Row
	err := db.Each(context.Background(), func(row vdba.Row) bool {
		rows = append(rows, row)
		return len(rows) < 2
	}, selectUsers)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Rows are independent maps.
	rows[0]["name"] = "changed"
	assert.Equal(t, "grace", rows[1]["name"])
	assert.Equal(t, 2, session.LastQuery().Iter().Consumed())
}

func TestEachCancelledContext(t *testing.T) {
	cluster := testutil.NewMockCluster().SetRows(selectUsers, userRows()...)
	db, _ := openTestDatabase(t, cluster)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := db.Each(ctx, func(vdba.Row) bool {
		called = true
		return true
	}, selectUsers)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestQueryMetrics(t *testing.T) {
	cluster := testutil.NewMockCluster().SetRows(selectUsers, userRows()...)
	collector := testutil.NewTestMetricsCollector()
	db, _ := openTestDatabase(t, cluster, WithMetrics(collector))
	ctx := context.Background()

	require.NoError(t, db.Run(ctx, "TRUNCATE users"))
	_, err := db.Find(ctx, selectUsers)
	require.NoError(t, err)
	_, err = db.FindOne(ctx, selectUsers)
	require.NoError(t, err)
	require.NoError(t, db.Each(ctx, func(vdba.Row) bool { return true }, selectUsers))

	assert.Equal(t, int64(1), collector.GetQueryTotal(types.OpRun))
	assert.Equal(t, int64(1), collector.GetQueryTotal(types.OpFind))
	assert.Equal(t, int64(1), collector.GetQueryTotal(types.OpFindOne))
	assert.Equal(t, int64(1), collector.GetQueryTotal(types.OpEach))
	assert.Zero(t, collector.GetQueryErrors(types.OpFind))
}

func TestRowLatchDeliversOnce(t *testing.T) {
	var calls atomic.Int32
	var winner atomic.Value
	latch := newRowLatch(func(row vdba.Row, _ error) {
		calls.Add(1)
		winner.Store(row["n"])
	})

	const n = 64
	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	start := make(chan struct{})
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if latch.deliver(vdba.Row{"n": i}, nil) {
				wins.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(1), wins.Load())
	assert.NotNil(t, winner.Load())

	assert.False(t, latch.deliver(nil, errors.New("late")), "a delivered latch ignores later values")
	assert.Equal(t, int32(1), calls.Load())
}
