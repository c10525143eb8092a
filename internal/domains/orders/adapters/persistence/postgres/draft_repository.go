package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
	"github.com/fieldops/salesorder-api/internal/domains/orders/ports"
)

var _ ports.DraftRepository = (*DraftRepository)(nil)

// DraftRepository persists drafts in PostgreSQL using GORM.
type DraftRepository struct {
	db *gorm.DB
}

// NewDraftRepository wires a PostgreSQL-backed draft repository. Caller
// manages DB lifecycle.
func NewDraftRepository(db *gorm.DB) *DraftRepository {
	repo := &DraftRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&draftRecord{}, &draftItemRecord{})
	}
	return repo
}

// draftRecord maps the draft aggregate head to a relational table. The user
// id is the primary key: at most one draft per user by construction.
type draftRecord struct {
	UserID       string    `gorm:"primaryKey;column:user_id;size:64"`
	ClientID     string    `gorm:"column:client_id;size:64"`
	DeliveryDate time.Time `gorm:"column:delivery_date"`
	TotalAmount  int64     `gorm:"column:total_amount"`
	SavedAt      time.Time `gorm:"column:saved_at"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (draftRecord) TableName() string { return "order_drafts" }

type draftItemRecord struct {
	ID               int64  `gorm:"primaryKey;column:id;autoIncrement"`
	UserID           string `gorm:"column:user_id;size:64;index:idx_draft_items_user"`
	Position         int    `gorm:"column:position"`
	ProductCode      string `gorm:"column:product_code;size:64"`
	CaseQuantity     int64  `gorm:"column:case_quantity"`
	PieceQuantity    int64  `gorm:"column:piece_quantity"`
	UnitPrice        int64  `gorm:"column:unit_price"`
	UnitsPerCase     int64  `gorm:"column:units_per_case"`
	MinimumOrderUnit int64  `gorm:"column:minimum_order_unit"`
	SupplyQuantity   int64  `gorm:"column:supply_quantity"`
	DCQuantity       int64  `gorm:"column:dc_quantity"`
}

func (draftItemRecord) TableName() string { return "order_draft_items" }

func (r *DraftRepository) Get(ctx context.Context, userID string) (*domain.Draft, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record draftRecord
	if err := r.db.WithContext(ctx).First(&record, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrDraftNotFound
		}
		return nil, err
	}
	var items []draftItemRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return record.toDomain(items), nil
}

// Replace deletes any existing draft for the user and inserts the new one
// inside a single transaction. The delete-then-insert ordering is the point:
// a draft is a full replacement, and concurrent saves for the same user must
// not interleave into a hybrid state.
func (r *DraftRepository) Replace(ctx context.Context, draft *domain.Draft) (*domain.Draft, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, errors.New("draft is nil")
	}
	record, items := toDraftRecords(draft)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", record.UserID).Delete(&draftItemRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", record.UserID).Delete(&draftRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, draft.UserID)
}

func (r *DraftRepository) Delete(ctx context.Context, userID string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&draftItemRecord{}).Error; err != nil {
			return err
		}
		result := tx.Where("user_id = ?", userID).Delete(&draftRecord{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrDraftNotFound
		}
		return nil
	})
}

func (r *DraftRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres draft repository not configured")
	}
	return nil
}

func toDraftRecords(draft *domain.Draft) (draftRecord, []draftItemRecord) {
	record := draftRecord{
		UserID:       draft.UserID,
		ClientID:     draft.ClientID,
		DeliveryDate: draft.DeliveryDate,
		TotalAmount:  draft.TotalAmount,
		SavedAt:      draft.SavedAt,
	}
	items := make([]draftItemRecord, 0, len(draft.Items))
	for i, item := range draft.Items {
		items = append(items, draftItemRecord{
			UserID:           draft.UserID,
			Position:         i,
			ProductCode:      item.ProductCode,
			CaseQuantity:     item.CaseQuantity,
			PieceQuantity:    item.PieceQuantity,
			UnitPrice:        item.Facts.UnitPrice,
			UnitsPerCase:     item.Facts.UnitsPerCase,
			MinimumOrderUnit: item.Facts.MinimumOrderUnit,
			SupplyQuantity:   item.Facts.SupplyQuantity,
			DCQuantity:       item.Facts.DCQuantity,
		})
	}
	return record, items
}

func (r draftRecord) toDomain(items []draftItemRecord) *domain.Draft {
	draft := &domain.Draft{
		UserID:       r.UserID,
		ClientID:     r.ClientID,
		DeliveryDate: r.DeliveryDate,
		TotalAmount:  r.TotalAmount,
		SavedAt:      r.SavedAt,
	}
	for _, item := range items {
		draft.Items = append(draft.Items, domain.DraftItem{
			ProductCode:   item.ProductCode,
			CaseQuantity:  item.CaseQuantity,
			PieceQuantity: item.PieceQuantity,
			Facts: domain.ProductFacts{
				ProductCode:      item.ProductCode,
				UnitPrice:        item.UnitPrice,
				UnitsPerCase:     item.UnitsPerCase,
				MinimumOrderUnit: item.MinimumOrderUnit,
				SupplyQuantity:   item.SupplyQuantity,
				DCQuantity:       item.DCQuantity,
			},
		})
	}
	return draft
}
