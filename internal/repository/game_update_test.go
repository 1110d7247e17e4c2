package repository_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/iliyamo/game-storefront/internal/model"
	"github.com/iliyamo/game-storefront/internal/repository"
)

var errRowsAffected = errors.New("rows affected unsupported")

// noCountDriver accepts every Exec but cannot report affected rows.
type noCountDriver struct{}

func (noCountDriver) Open(string) (driver.Conn, error) { return noCountConn{}, nil }

type noCountConn struct{}

func (noCountConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (noCountConn) Close() error                        { return nil }
func (noCountConn) Begin() (driver.Tx, error)           { return nil, errors.New("not supported") }

func (noCountConn) ExecContext(context.Context, string, []driver.NamedValue) (driver.Result, error) {
	return noCountResult{}, nil
}

type noCountResult struct{}

func (noCountResult) LastInsertId() (int64, error) { return 0, errRowsAffected }
func (noCountResult) RowsAffected() (int64, error) { return 0, errRowsAffected }

func init() { sql.Register("nocount", noCountDriver{}) }

func TestGameRepoUpdateReturnsRowsAffectedError(t *testing.T) {
	db, err := sql.Open("nocount", "")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	g := model.Game{ID: 1, CategoryID: 1, Name: "Zelda", Developer: "Nintendo", Rating: "E", Version: 1}
	err = repository.NewGameRepo(db).Update(context.Background(), &g)
	if !errors.Is(err, errRowsAffected) {
		t.Fatalf("Update error = %v, want %v", err, errRowsAffected)
	}
	if errors.Is(err, repository.ErrConcurrencyConflict) {
		t.Error("driver error reported as a concurrency conflict")
	}
}
