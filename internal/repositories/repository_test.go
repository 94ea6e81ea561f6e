package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"sync"
	"testing"

	"studioBack/internal/models"
)

// stubConn records executed statements and answers every exec with a fixed
// RowsAffected, which is all the guard tests below need.
type stubConn struct {
	mu      sync.Mutex
	queries []string
	rows    int64
}

func (c *stubConn) Prepare(query string) (driver.Stmt, error) { return &stubStmt{c: c, query: query}, nil }
func (c *stubConn) Close() error                              { return nil }
func (c *stubConn) Begin() (driver.Tx, error)                 { return nil, driver.ErrSkip }

func (c *stubConn) lastQuery() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queries) == 0 {
		return ""
	}
	return c.queries[len(c.queries)-1]
}

type stubStmt struct {
	c     *stubConn
	query string
}

func (s *stubStmt) Close() error  { return nil }
func (s *stubStmt) NumInput() int { return -1 }

func (s *stubStmt) Exec(args []driver.Value) (driver.Result, error) {
	s.c.mu.Lock()
	s.c.queries = append(s.c.queries, s.query)
	rows := s.c.rows
	s.c.mu.Unlock()
	return stubResult{rows: rows}, nil
}

func (s *stubStmt) Query(args []driver.Value) (driver.Rows, error) {
	return nil, errors.New("stub: queries not supported")
}

type stubResult struct{ rows int64 }

func (r stubResult) LastInsertId() (int64, error) { return 1, nil }
func (r stubResult) RowsAffected() (int64, error) { return r.rows, nil }

type stubConnector struct{ conn *stubConn }

func (s stubConnector) Connect(context.Context) (driver.Conn, error) { return s.conn, nil }
func (s stubConnector) Driver() driver.Driver                        { return stubDriver(s) }

type stubDriver struct{ conn *stubConn }

func (d stubDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

func newStubDB(rowsAffected int64) (*sql.DB, *stubConn) {
	conn := &stubConn{rows: rowsAffected}
	return sql.OpenDB(stubConnector{conn: conn}), conn
}

func TestMarkRejectedGuardsAcceptedRequests(t *testing.T) {
	t.Run("zero rows means the accept won", func(t *testing.T) {
		db, conn := newStubDB(0)
		defer db.Close()
		repo := RequestRepository{DB: db}

		err := repo.MarkRejected(context.Background(), 5)
		if !errors.Is(err, models.ErrRequestAccepted) {
			t.Fatalf("expected ErrRequestAccepted, got %v", err)
		}
		if q := conn.lastQuery(); !strings.Contains(q, "status <> 'accepted'") {
			t.Fatalf("reject update is missing the accepted guard: %s", q)
		}
	})

	t.Run("guarded row rejects normally", func(t *testing.T) {
		db, _ := newStubDB(1)
		defer db.Close()
		repo := RequestRepository{DB: db}

		if err := repo.MarkRejected(context.Background(), 5); err != nil {
			t.Fatalf("MarkRejected: %v", err)
		}
	})
}

func TestInvoiceUpdateAmountSkipsPaid(t *testing.T) {
	db, conn := newStubDB(0)
	defer db.Close()
	repo := InvoiceRepository{DB: db}

	updated, err := repo.UpdateAmount(context.Background(), 3, 90000)
	if err != nil {
		t.Fatalf("UpdateAmount: %v", err)
	}
	if updated {
		t.Fatal("expected a paid invoice to be left untouched")
	}
	if q := conn.lastQuery(); !strings.Contains(q, "status <> 'paid'") {
		t.Fatalf("amount update is missing the paid guard: %s", q)
	}
}
