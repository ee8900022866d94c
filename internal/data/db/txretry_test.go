package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestIsRetryableTxError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"serialization failure", fmt.Errorf("ERROR: could not serialize access due to concurrent update (SQLSTATE 40001)"), true},
		{"deadlock sqlstate", fmt.Errorf("ERROR: deadlock detected (SQLSTATE 40P01)"), true},
		{"sqlite busy", errors.New("database is locked (5) (SQLITE_BUSY)"), true},
		{"sqlite table locked", errors.New("database table is locked"), true},
		{"unique violation", fmt.Errorf("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"), false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsRetryableTxError(tc.err))
		})
	}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := errors.New("constraint violated")
	err := Retry(context.Background(), func() error {
		calls++
		return permanent
	})
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), func() error {
		calls++
		return errors.New("SQLSTATE 40001")
	})
	assert.Error(t, err)
	assert.Equal(t, txMaxAttempts, calls)
}

// RunInTxRetry must open transactions at SERIALIZABLE so that racing
// check-then-insert writers (booking, chart quota) conflict instead of both
// committing. This exercises the BeginTx path end to end; both supported
// drivers accept the serializable level.
func TestRunInTxRetryCommitsAtSerializable(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.Exec("CREATE TABLE slot (id INTEGER PRIMARY KEY, label TEXT)").Error)

	s := &Service{db: gdb, driver: "sqlite"}
	err = s.RunInTxRetry(context.Background(), func(tx *gorm.DB) error {
		return tx.Exec("INSERT INTO slot (label) VALUES (?)", "booked").Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, gdb.Raw("SELECT COUNT(*) FROM slot").Scan(&count).Error)
	assert.Equal(t, int64(1), count)

	// fn errors roll the transaction back.
	boom := errors.New("slot already booked")
	err = s.RunInTxRetry(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Exec("INSERT INTO slot (label) VALUES (?)", "ghost").Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	require.NoError(t, gdb.Raw("SELECT COUNT(*) FROM slot").Scan(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, func() error {
		calls++
		cancel()
		return errors.New("SQLSTATE 40001")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
