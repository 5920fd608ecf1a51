//go:build integration

// Package testdb provides helpers for database integration tests.
//
// Each test runs inside its own transaction, which is rolled back when the
// test completes, so tests can run in parallel against one database:
//
//	func TestMeetingStore(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.Open(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        meetings := postgres.NewPostgresMeetingStore(db, nil).WithTx(tx)
//	        // ...
//	    })
//	}
//
// Open skips the test unless SPOTLY_TEST_DATABASE_URL or DATABASE_URL is
// set, and applies the embedded migrations once per process.
package testdb
