package database

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForDatabase_ReadyImmediately(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()

	runner := NewMigrationRunner(db)
	assert.NoError(t, runner.WaitForDatabase())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_RecoversAfterFailures(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing()

	origInterval := retryInterval
	retryInterval = time.Millisecond
	defer func() { retryInterval = origInterval }()

	runner := NewMigrationRunner(db)
	assert.NoError(t, runner.WaitForDatabase())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_GivesUpAfterMaxRetries(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	origRetries, origInterval := maxRetries, retryInterval
	maxRetries = 2
	retryInterval = time.Millisecond
	defer func() { maxRetries, retryInterval = origRetries, origInterval }()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	runner := NewMigrationRunner(db)
	assert.Error(t, runner.WaitForDatabase())
}

func TestRunMigrations_SkipsWhenDirectoryMissing(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db)
	runner.migrationsPath = "does/not/exist"

	// Nothing touches the database when there is nothing to run.
	assert.NoError(t, runner.RunMigrations())
}

func TestRunMigrationsIfEnabled_DisabledByDefault(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	t.Setenv("AUTO_MIGRATE", "false")

	assert.NoError(t, RunMigrationsIfEnabled(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMigrationStatus_MissingDirectory(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db)
	runner.migrationsPath = "does/not/exist"

	_, _, err = runner.GetMigrationStatus()
	assert.Error(t, err)
}
