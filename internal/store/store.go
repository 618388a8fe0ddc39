// Package store implements the generic local persistent entity store every
// repository is built on: predicate-filtered queries, insert/update/upsert
// with id-presence dispatch, and bulk deletes, all against one sqlite table
// per entity type.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nephrolog/nephrolog-sync/internal/apperrors"
)

// Entity is the contract every cached type satisfies through its embedded
// CacheMeta.
type Entity interface {
	EntityID() string
	SetEntityID(id string)
	RetrievedAt() time.Time
	Touch(at time.Time)
	Owner() string
	SetOwner(userID string)
}

// Condition is a single WHERE clause with its arguments.
type Condition struct {
	Expr string
	Args []any
}

// Where builds a query condition.
func Where(expr string, args ...any) Condition {
	return Condition{Expr: expr, Args: args}
}

// QueryOptions selects and orders the records a Query returns.
type QueryOptions struct {
	Where []Condition
	Order string
	Limit int
}

// Store persists one entity type. Writes are serialized by the store mutex;
// reads may run concurrently.
type Store[T any, PT interface {
	Entity
	*T
}] struct {
	db *gorm.DB
	mu sync.Mutex
}

// New creates a Store for one entity type over the shared sqlite handle.
func New[T any, PT interface {
	Entity
	*T
}](db *gorm.DB) *Store[T, PT] {
	return &Store[T, PT]{db: db}
}

// Query returns all records matching the options, ordered as requested.
// An empty result is not an error. A row that fails to decode is skipped so
// read paths return partial results instead of failing outright.
func (s *Store[T, PT]) Query(ctx context.Context, opts QueryOptions) ([]PT, error) {
	tx := s.db.WithContext(ctx).Model(PT(new(T)))
	for _, cond := range opts.Where {
		tx = tx.Where(cond.Expr, cond.Args...)
	}
	if opts.Order != "" {
		tx = tx.Order(opts.Order)
	}
	if opts.Limit > 0 {
		tx = tx.Limit(opts.Limit)
	}

	rows, err := tx.Rows()
	if err != nil {
		return nil, &apperrors.StorageError{Op: "query", Err: err}
	}
	defer rows.Close()

	var out []PT
	for rows.Next() {
		rec := PT(new(T))
		if err := s.db.ScanRows(rows, rec); err != nil {
			slog.Warn("skipping malformed record", "error", err)
			continue
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &apperrors.StorageError{Op: "query", Err: err}
	}
	return out, nil
}

// Insert assigns identifiers to empty-id items, stamps their retrieval date
// and persists them, returning the persisted forms.
func (s *Store[T, PT]) Insert(ctx context.Context, items []PT) ([]PT, error) {
	if len(items) == 0 {
		return items, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, item := range items {
		if item.EntityID() == "" {
			item.SetEntityID(uuid.NewString())
		}
		item.Touch(now)
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(items).Error; err != nil {
		return nil, &apperrors.StorageError{Op: "insert", Err: err}
	}
	return items, nil
}

// Update persists the given items, failing with NotFoundError when an item
// has no existing row. Callers must insert first.
func (s *Store[T, PT]) Update(ctx context.Context, items []PT) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(ctx, items)
}

func (s *Store[T, PT]) updateLocked(ctx context.Context, items []PT) error {
	now := time.Now().UTC()
	for _, item := range items {
		exists, err := s.exists(ctx, item.EntityID())
		if err != nil {
			return err
		}
		if !exists {
			return &apperrors.NotFoundError{Resource: s.tableName(), ID: item.EntityID()}
		}
		item.Touch(now)
		if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error; err != nil {
			return &apperrors.StorageError{Op: "update", Err: err}
		}
	}
	return nil
}

// Upsert updates items that already have a matching row and inserts the
// rest. An empty id always means insert with a freshly generated id; a
// non-empty id is looked up and either updated or inserted as given.
func (s *Store[T, PT]) Upsert(ctx context.Context, items []PT) ([]PT, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, item := range items {
		if item.EntityID() == "" {
			item.SetEntityID(uuid.NewString())
			item.Touch(now)
			if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
				return nil, &apperrors.StorageError{Op: "upsert", Err: err}
			}
			continue
		}

		exists, err := s.exists(ctx, item.EntityID())
		if err != nil {
			return nil, err
		}
		item.Touch(now)
		if exists {
			if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error; err != nil {
				return nil, &apperrors.StorageError{Op: "upsert", Err: err}
			}
		} else {
			if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
				return nil, &apperrors.StorageError{Op: "upsert", Err: err}
			}
		}
	}
	return items, nil
}

// Delete removes the given items by primary key.
func (s *Store[T, PT]) Delete(ctx context.Context, items []PT) error {
	if len(items) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.EntityID() != "" {
			ids = append(ids, item.EntityID())
		}
	}
	if len(ids) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Delete(PT(new(T))).Error; err != nil {
		return &apperrors.StorageError{Op: "delete", Err: err}
	}
	return nil
}

// RemoveAll bulk-deletes every record matching the conditions. Used by
// logout and reset flows.
func (s *Store[T, PT]) RemoveAll(ctx context.Context, conds ...Condition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.db.WithContext(ctx)
	if len(conds) == 0 {
		tx = tx.Where("1 = 1")
	}
	for _, cond := range conds {
		tx = tx.Where(cond.Expr, cond.Args...)
	}
	if err := tx.Delete(PT(new(T))).Error; err != nil {
		return &apperrors.StorageError{Op: "removeAll", Err: err}
	}
	return nil
}

func (s *Store[T, PT]) exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(PT(new(T))).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, &apperrors.StorageError{Op: "lookup", Err: err}
	}
	return count > 0, nil
}

func (s *Store[T, PT]) tableName() string {
	stmt := &gorm.Statement{DB: s.db}
	if err := stmt.Parse(PT(new(T))); err != nil {
		return "record"
	}
	return stmt.Schema.Table
}
