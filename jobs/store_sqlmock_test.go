package jobs

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/ShahwaizZahid/Job-Listing/errors"
)

// Minimal sqlmock tests to verify the SQL the list query builder emits.
// Behavior against a real database lives in store_test.go.

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	sqldb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })

	// ScanAndCount may issue the data and count queries in either order
	mock.MatchExpectationsInOrder(false)

	return NewStore(bun.NewDB(sqldb, sqlitedialect.New())), mock
}

func TestList_QueryShape_Sqlmock(t *testing.T) {
	store, mock := newMockStore(t)

	// The data query carries the filters, the ordering, and the page window
	mock.ExpectQuery(`SELECT "job"\."id".*LOWER\(title\) LIKE '%engineer%' OR LOWER\(company\) LIKE '%engineer%'.*LOWER\(location\) LIKE '%remote%'.*job_type = 'Full-time'.*LOWER\(tags\) LIKE '%go%'.*ORDER BY "posting_date" ASC LIMIT 10 OFFSET 20`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// The count query keeps the filters but drops ordering and the window
	mock.ExpectQuery(`SELECT count\(\*\).*LOWER\(title\) LIKE '%engineer%'`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	listed, total, err := store.List(context.Background(), ListParams{
		Search:   "Engineer",
		Location: "Remote",
		JobType:  "Full-time",
		Tag:      "Go",
		Sort:     SortPostingDateAsc,
		Page:     3,
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("Expected no rows, got %d", len(listed))
	}
	if total != 25 {
		t.Errorf("Expected total 25, got %d", total)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestList_DefaultQueryShape_Sqlmock(t *testing.T) {
	store, mock := newMockStore(t)

	// No filters, newest first, first page of ten, no OFFSET clause
	mock.ExpectQuery(`SELECT "job"\."id".*FROM "jobs" AS "job" ORDER BY "posting_date" DESC LIMIT 10$`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "jobs"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	if _, _, err := store.List(context.Background(), ListParams{}); err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestList_QueryError_Sqlmock(t *testing.T) {
	store, mock := newMockStore(t)

	queryErr := errors.New("disk I/O error")
	mock.ExpectQuery(`SELECT "job"\."id"`).WillReturnError(queryErr)
	mock.ExpectQuery(`SELECT count\(\*\)`).WillReturnError(queryErr)

	if _, _, err := store.List(context.Background(), ListParams{}); err == nil {
		t.Fatal("Expected error from failing query")
	}
}
