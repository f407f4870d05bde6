package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/workoutcal/internal/gateway"
	"github.com/2beens/workoutcal/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const (
	profilesTable = "profiles"

	pgErrUndefinedTable = "42P01"
)

// Store keeps every row as a JSONB document next to its owning user id.
// The same pool backs both the row store and the profile columns.
type Store struct {
	db *pgxpool.Pool
}

var (
	_ gateway.RowStore     = (*Store)(nil)
	_ gateway.ProfileStore = (*Store)(nil)
)

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) FetchRows(ctx context.Context, table, userID string, dst any, loading *gateway.LoadingFlag) error {
	defer gateway.Track(loading)()

	t, err := sanitizedTable(table)
	if err != nil {
		return err
	}

	rows, err := s.db.Query(
		ctx,
		`SELECT data FROM `+t+` WHERE user_id = $1 ORDER BY id;`,
		userID,
	)
	if err != nil {
		return mapErr(table, err)
	}
	defer rows.Close()

	var docs [][]byte
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return fmt.Errorf("rows scan: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return mapErr(table, err)
	}

	return gateway.DecodeDocuments(docs, dst)
}

func (s *Store) InsertRow(ctx context.Context, table, userID string, row any, loading *gateway.LoadingFlag) error {
	defer gateway.Track(loading)()

	t, err := sanitizedTable(table)
	if err != nil {
		return err
	}
	doc, err := gateway.EncodeDocument(row)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(
		ctx,
		`INSERT INTO `+t+` (user_id, data) VALUES ($1, $2::jsonb);`,
		userID, string(doc),
	); err != nil {
		return mapErr(table, err)
	}
	return nil
}

func (s *Store) UpdateRow(ctx context.Context, table, userID, keyColumn, keyValue string, row any, loading *gateway.LoadingFlag) error {
	defer gateway.Track(loading)()

	t, err := sanitizedTable(table)
	if err != nil {
		return err
	}
	doc, err := gateway.EncodeDocument(row)
	if err != nil {
		return err
	}
	if doc, err = gateway.WithoutKey(doc, keyColumn); err != nil {
		return err
	}

	tag, err := s.db.Exec(
		ctx,
		`UPDATE `+t+` SET data = data || $4::jsonb WHERE user_id = $1 AND data->>$2 = $3;`,
		userID, keyColumn, keyValue, string(doc),
	)
	if err != nil {
		return mapErr(table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s=%s", gateway.ErrRowNotFound, keyColumn, keyValue)
	}
	return nil
}

func (s *Store) UpdateAllRows(ctx context.Context, table, userID, keyColumn string, rows any, loading *gateway.LoadingFlag) error {
	defer gateway.Track(loading)()

	t, err := sanitizedTable(table)
	if err != nil {
		return err
	}
	docs, err := gateway.EncodeDocuments(rows)
	if err != nil {
		return err
	}

	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		for _, doc := range docs {
			key, err := gateway.KeyOf(doc, keyColumn)
			if err != nil {
				return err
			}
			tag, err := tx.Exec(
				ctx,
				`UPDATE `+t+` SET data = $4::jsonb WHERE user_id = $1 AND data->>$2 = $3;`,
				userID, keyColumn, key, string(doc),
			)
			if err != nil {
				return mapErr(table, err)
			}
			if tag.RowsAffected() > 0 {
				continue
			}
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO `+t+` (user_id, data) VALUES ($1, $2::jsonb);`,
				userID, string(doc),
			); err != nil {
				return mapErr(table, err)
			}
			log.Debugf("update all rows: %s=%s was missing remotely, inserted", keyColumn, key)
		}
		return nil
	})
}

// DeleteRow is idempotent: deleting a row that does not exist is not an error.
func (s *Store) DeleteRow(ctx context.Context, table, userID, idColumn, id string, loading *gateway.LoadingFlag) error {
	defer gateway.Track(loading)()

	t, err := sanitizedTable(table)
	if err != nil {
		return err
	}

	tag, err := s.db.Exec(
		ctx,
		`DELETE FROM `+t+` WHERE user_id = $1 AND data->>$2 = $3;`,
		userID, idColumn, id,
	)
	if err != nil {
		return mapErr(table, err)
	}
	if tag.RowsAffected() == 0 {
		log.Debugf("delete row: %s=%s not found in %s", idColumn, id, table)
	}
	return nil
}

func (s *Store) FetchColumn(ctx context.Context, userID, column string, dst any, loading *gateway.LoadingFlag) error {
	defer gateway.Track(loading)()

	c, err := sanitizedColumn(column)
	if err != nil {
		return err
	}

	var value []byte
	err = s.db.QueryRow(
		ctx,
		`SELECT `+c+` FROM `+profilesTable+` WHERE id = $1;`,
		userID,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetch column %s: %w", column, err)
	}
	if len(value) == 0 {
		return nil
	}

	return gateway.DecodeColumn(value, dst)
}

func (s *Store) PersistColumn(ctx context.Context, userID, column string, value any, loading *gateway.LoadingFlag) error {
	defer gateway.Track(loading)()

	c, err := sanitizedColumn(column)
	if err != nil {
		return err
	}
	doc, err := gateway.EncodeColumn(value)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(
		ctx,
		`INSERT INTO `+profilesTable+` (id, `+c+`) VALUES ($1, $2::jsonb)
		ON CONFLICT (id) DO UPDATE SET `+c+` = EXCLUDED.`+c+`;`,
		userID, string(doc),
	); err != nil {
		return fmt.Errorf("persist column %s: %w", column, err)
	}
	return nil
}

func sanitizedTable(table string) (string, error) {
	if err := gateway.ValidateTable(table); err != nil {
		return "", err
	}
	return pgx.Identifier{table}.Sanitize(), nil
}

func sanitizedColumn(column string) (string, error) {
	if err := gateway.ValidateColumn(column); err != nil {
		return "", err
	}
	return pgx.Identifier{column}.Sanitize(), nil
}

func mapErr(table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUndefinedTable {
		return fmt.Errorf("%w: %q", gateway.ErrUnknownTable, table)
	}
	if pkg.IsUniqueViolationError(err) {
		return fmt.Errorf("%s: %w", table, gateway.ErrDuplicateRow)
	}
	return fmt.Errorf("%s: %w", table, err)
}
