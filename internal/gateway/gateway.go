package gateway

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrUnknownTable  = errors.New("unknown table")
	ErrUnknownColumn = errors.New("unknown profile column")
	ErrRowNotFound   = errors.New("row not found")
	ErrDuplicateRow  = errors.New("row with the same key already exists")
	ErrMissingKey    = errors.New("row has no key value")
	ErrNoUser        = errors.New("no current user")
)

// Profile columns holding per-user JSON documents.
const (
	ColumnFavoriteExercises = "favorite_exercises"
	ColumnBodyParams        = "body_params"
)

var profileColumns = map[string]bool{
	ColumnFavoriteExercises: true,
	ColumnBodyParams:        true,
}

var identifierRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=gateway_test

// RowStore is the remote row-store half of the persistence gateway.
// Rows are JSON documents owned by a user. dst is a pointer to a slice
// the stored rows are decoded into.
type RowStore interface {
	FetchRows(ctx context.Context, table, userID string, dst any, loading *LoadingFlag) error
	InsertRow(ctx context.Context, table, userID string, row any, loading *LoadingFlag) error
	// UpdateRow merges row into the stored document whose keyColumn equals keyValue.
	UpdateRow(ctx context.Context, table, userID, keyColumn, keyValue string, row any, loading *LoadingFlag) error
	// UpdateAllRows upserts every element of rows by its keyColumn value.
	UpdateAllRows(ctx context.Context, table, userID, keyColumn string, rows any, loading *LoadingFlag) error
	DeleteRow(ctx context.Context, table, userID, idColumn, id string, loading *LoadingFlag) error
}

// ProfileStore persists whole per-user profile columns.
type ProfileStore interface {
	// FetchColumn decodes the stored value into dst. A missing profile
	// leaves dst untouched.
	FetchColumn(ctx context.Context, userID, column string, dst any, loading *LoadingFlag) error
	PersistColumn(ctx context.Context, userID, column string, value any, loading *LoadingFlag) error
}

type Identity interface {
	CurrentUserID(ctx context.Context) (string, error)
}

// StaticIdentity always resolves to the same user, used by the MCP server
// and by development setups without a login.
type StaticIdentity string

func (s StaticIdentity) CurrentUserID(context.Context) (string, error) {
	if s == "" {
		return "", ErrNoUser
	}
	return string(s), nil
}

func ValidateTable(table string) error {
	if !identifierRegex.MatchString(table) {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return nil
}

func ValidateColumn(column string) error {
	if !profileColumns[column] {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	return nil
}
