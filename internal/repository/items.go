package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/homekeep-labs/homekeeper/internal/common"
	"github.com/homekeep-labs/homekeeper/internal/entity"
)

// ItemRepository is the persistence contract for inventory items.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error)
	List(ctx context.Context) ([]entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type itemRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewItemRepository creates a sqlite-backed ItemRepository.
func NewItemRepository(db *sql.DB, logger *slog.Logger) ItemRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &itemRepository{db: db, logger: logger}
}

const itemColumns = `id, name, store_name, purchase_date, purchase_price,
	warranty_years, warranty_expiration, created_at, updated_at`

// dbError tags a storage failure so callers can test errors.Is(err,
// common.ErrDatabase) without knowing the driver.
func dbError(code, message string, err error) error {
	return common.NewAppError(code, message, errors.Join(common.ErrDatabase, err))
}

func (r *itemRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	if item.Name == "" {
		return common.NewAppError("ITEM_INVALID", "item name is required", common.ErrInvalidInput)
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory_items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID.String(),
		item.Name,
		item.StoreName,
		timeToCol(item.PurchaseDate),
		item.PurchasePrice,
		item.WarrantyYears,
		timeToCol(item.WarrantyExpiration),
		now.Format(time.RFC3339Nano),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return dbError("ITEM_CREATE_FAILED", "failed to create item", err)
	}

	r.logger.Info("item created", "item_id", item.ID, "name", item.Name)
	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+itemColumns+`
		FROM inventory_items WHERE id = ?`, id.String())

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewAppError("ITEM_NOT_FOUND", "item not found", common.ErrNotFound)
	}
	if err != nil {
		return nil, dbError("ITEM_GET_FAILED", "failed to load item", err)
	}
	return item, nil
}

func (r *itemRepository) List(ctx context.Context) ([]entity.InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM inventory_items ORDER BY created_at, id`)
	if err != nil {
		return nil, dbError("ITEM_LIST_FAILED", "failed to list items", err)
	}
	defer rows.Close()

	var items []entity.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, dbError("ITEM_LIST_FAILED", "failed to scan item", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("ITEM_LIST_FAILED", "failed to iterate items", err)
	}
	return items, nil
}

func (r *itemRepository) Update(ctx context.Context, item *entity.InventoryItem) error {
	if item.Name == "" {
		return common.NewAppError("ITEM_INVALID", "item name is required", common.ErrInvalidInput)
	}
	item.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
		UPDATE inventory_items
		SET name = ?, store_name = ?, purchase_date = ?, purchase_price = ?,
		    warranty_years = ?, warranty_expiration = ?, updated_at = ?
		WHERE id = ?`,
		item.Name,
		item.StoreName,
		timeToCol(item.PurchaseDate),
		item.PurchasePrice,
		item.WarrantyYears,
		timeToCol(item.WarrantyExpiration),
		item.UpdatedAt.Format(time.RFC3339Nano),
		item.ID.String(),
	)
	if err != nil {
		return dbError("ITEM_UPDATE_FAILED", "failed to update item", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.NewAppError("ITEM_NOT_FOUND", "item not found", common.ErrNotFound)
	}

	r.logger.Info("item updated", "item_id", item.ID)
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = ?`, id.String())
	if err != nil {
		return dbError("ITEM_DELETE_FAILED", "failed to delete item", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.NewAppError("ITEM_NOT_FOUND", "item not found", common.ErrNotFound)
	}

	r.logger.Info("item deleted", "item_id", id)
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*entity.InventoryItem, error) {
	var (
		item       entity.InventoryItem
		idStr      string
		purchase   sql.NullString
		expiration sql.NullString
		createdAt  string
		updatedAt  string
	)
	err := s.Scan(
		&idStr,
		&item.Name,
		&item.StoreName,
		&purchase,
		&item.PurchasePrice,
		&item.WarrantyYears,
		&expiration,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	if item.PurchaseDate, err = colToTime(purchase); err != nil {
		return nil, err
	}
	if item.WarrantyExpiration, err = colToTime(expiration); err != nil {
		return nil, err
	}
	if item.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, err
	}
	if item.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

func timeToCol(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func colToTime(col sql.NullString) (*time.Time, error) {
	if !col.Valid || col.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, col.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
