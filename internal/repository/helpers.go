package repository

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// mysqlDuplicateEntry ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

func mapDuplicate(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return ErrDuplicate
	}
	return err
}

// execAffectingOne runs a write that must touch a row, ErrNotFound otherwise.
// The DSN sets clientFoundRows so unchanged rows still count as matched.
func execAffectingOne(ctx context.Context, db *sqlx.DB, query string, args ...interface{}) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func namedExecAffectingOne(ctx context.Context, db *sqlx.DB, query string, arg interface{}) error {
	result, err := db.NamedExecContext(ctx, query, arg)
	if err != nil {
		return mapDuplicate(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
