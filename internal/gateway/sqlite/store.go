package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/2beens/workoutcal/internal/gateway"
	"github.com/2beens/workoutcal/internal/workout"

	log "github.com/sirupsen/logrus"
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const profilesTable = "profiles"

// Store is the offline / development backend: the same document layout as
// the postgres store, kept in a single SQLite file.
type Store struct {
	db *sql.DB
}

var (
	_ gateway.RowStore     = (*Store)(nil)
	_ gateway.ProfileStore = (*Store)(nil)
)

// Open opens (or creates) the database at path and makes sure the given
// row tables exist. Use ":memory:" for a throwaway database.
func Open(path string, tables ...string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// a :memory: database lives and dies with its connection
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initialize(tables); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initialize(tables []string) error {
	for _, table := range tables {
		if err := gateway.ValidateTable(table); err != nil {
			return err
		}
		stmts := []string{
			`CREATE TABLE IF NOT EXISTS ` + table + ` (
				id         INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id    TEXT NOT NULL,
				data       TEXT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS ` + table + `_user_id_idx ON ` + table + ` (user_id)`,
			// one row per user and workoutId, same as the postgres migration
			`CREATE UNIQUE INDEX IF NOT EXISTS ` + table + `_user_workout_id_idx ON ` + table +
				` (user_id, json_extract(data, '` + jsonPath(workout.ColumnWorkoutID) + `'))`,
		}
		for _, stmt := range stmts {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("create table %s: %w", table, err)
			}
		}
	}

	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS ` + profilesTable + ` (
		id                 TEXT PRIMARY KEY,
		favorite_exercises TEXT NOT NULL DEFAULT '[]',
		body_params        TEXT NOT NULL DEFAULT '[]'
	)`)
	if err != nil {
		return fmt.Errorf("create profiles table: %w", err)
	}
	return nil
}

func (s *Store) FetchRows(ctx context.Context, table, userID string, dst any, loading *gateway.LoadingFlag) error {
	defer gateway.Track(loading)()

	if err := gateway.ValidateTable(table); err != nil {
		return err
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT data FROM `+table+` WHERE user_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		return mapErr(table, err)
	}
	defer rows.Close()

	var docs [][]byte
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return fmt.Errorf("rows scan: %w", err)
		}
		docs = append(docs, []byte(doc))
	}
	if err := rows.Err(); err != nil {
		return mapErr(table, err)
	}

	return gateway.DecodeDocuments(docs, dst)
}

func (s *Store) InsertRow(ctx context.Context, table, userID string, row any, loading *gateway.LoadingFlag) error {
	defer gateway.Track(loading)()

	if err := gateway.ValidateTable(table); err != nil {
		return err
	}
	doc, err := gateway.EncodeDocument(row)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(
		ctx,
		`INSERT INTO `+table+` (user_id, data) VALUES (?, ?)`,
		userID, string(doc),
	); err != nil {
		return mapErr(table, err)
	}
	return nil
}

func (s *Store) UpdateRow(ctx context.Context, table, userID, keyColumn, keyValue string, row any, loading *gateway.LoadingFlag) error {
	defer gateway.Track(loading)()

	if err := gateway.ValidateTable(table); err != nil {
		return err
	}
	doc, err := gateway.EncodeDocument(row)
	if err != nil {
		return err
	}
	if doc, err = gateway.WithoutKey(doc, keyColumn); err != nil {
		return err
	}

	res, err := s.db.ExecContext(
		ctx,
		`UPDATE `+table+` SET data = json_patch(data, ?) WHERE user_id = ? AND json_extract(data, ?) = ?`,
		string(doc), userID, jsonPath(keyColumn), keyValue,
	)
	if err != nil {
		return mapErr(table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s=%s", gateway.ErrRowNotFound, keyColumn, keyValue)
	}
	return nil
}

func (s *Store) UpdateAllRows(ctx context.Context, table, userID, keyColumn string, rows any, loading *gateway.LoadingFlag) (err error) {
	defer gateway.Track(loading)()

	if err := gateway.ValidateTable(table); err != nil {
		return err
	}
	docs, err := gateway.EncodeDocuments(rows)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Errorf("update all rows: rollback: %s", rbErr)
			}
		}
	}()

	for _, doc := range docs {
		key, err := gateway.KeyOf(doc, keyColumn)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(
			ctx,
			`UPDATE `+table+` SET data = ? WHERE user_id = ? AND json_extract(data, ?) = ?`,
			string(doc), userID, jsonPath(keyColumn), key,
		)
		if err != nil {
			return mapErr(table, err)
		}
		if affected, _ := res.RowsAffected(); affected > 0 {
			continue
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO `+table+` (user_id, data) VALUES (?, ?)`,
			userID, string(doc),
		); err != nil {
			return mapErr(table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) DeleteRow(ctx context.Context, table, userID, idColumn, id string, loading *gateway.LoadingFlag) error {
	defer gateway.Track(loading)()

	if err := gateway.ValidateTable(table); err != nil {
		return err
	}

	res, err := s.db.ExecContext(
		ctx,
		`DELETE FROM `+table+` WHERE user_id = ? AND json_extract(data, ?) = ?`,
		userID, jsonPath(idColumn), id,
	)
	if err != nil {
		return mapErr(table, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		log.Debugf("delete row: %s=%s not found in %s", idColumn, id, table)
	}
	return nil
}

func (s *Store) FetchColumn(ctx context.Context, userID, column string, dst any, loading *gateway.LoadingFlag) error {
	defer gateway.Track(loading)()

	if err := gateway.ValidateColumn(column); err != nil {
		return err
	}

	var value string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT `+column+` FROM `+profilesTable+` WHERE id = ?`,
		userID,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetch column %s: %w", column, err)
	}

	return gateway.DecodeColumn([]byte(value), dst)
}

func (s *Store) PersistColumn(ctx context.Context, userID, column string, value any, loading *gateway.LoadingFlag) error {
	defer gateway.Track(loading)()

	if err := gateway.ValidateColumn(column); err != nil {
		return err
	}
	doc, err := gateway.EncodeColumn(value)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(
		ctx,
		`INSERT INTO `+profilesTable+` (id, `+column+`) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET `+column+` = excluded.`+column,
		userID, string(doc),
	); err != nil {
		return fmt.Errorf("persist column %s: %w", column, err)
	}
	return nil
}

func jsonPath(field string) string {
	return `$."` + strings.ReplaceAll(field, `"`, ``) + `"`
}

func mapErr(table string, err error) error {
	if strings.Contains(err.Error(), "no such table") {
		return fmt.Errorf("%w: %q", gateway.ErrUnknownTable, table)
	}
	var sqliteErr *sqlitedriver.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return fmt.Errorf("%s: %w", table, gateway.ErrDuplicateRow)
	}
	return fmt.Errorf("%s: %w", table, err)
}
