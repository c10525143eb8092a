package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
	"github.com/fieldops/salesorder-api/internal/domains/orders/ports"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

// uniqueViolation is the Postgres SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

// OrderRepository persists submitted orders in PostgreSQL using GORM.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository wires a PostgreSQL-backed order repository.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	repo := &OrderRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &orderItemRecord{})
	}
	return repo
}

type orderRecord struct {
	RequestNumber       string    `gorm:"primaryKey;column:request_number;size:32"`
	UserID              string    `gorm:"column:user_id;size:64;index:idx_orders_user_date"`
	ClientID            string    `gorm:"column:client_id;size:64;index"`
	OrderDate           time.Time `gorm:"column:order_date;index:idx_orders_user_date"`
	DeliveryDate        time.Time `gorm:"column:delivery_date"`
	TotalAmount         int64     `gorm:"column:total_amount"`
	TotalApprovedAmount int64     `gorm:"column:total_approved_amount"`
	Status              string    `gorm:"column:status;type:varchar(32);index"`
	FailureReason       string    `gorm:"column:failure_reason"`
	CreatedAt           time.Time `gorm:"column:created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID               int64  `gorm:"primaryKey;column:id;autoIncrement"`
	RequestNumber    string `gorm:"column:request_number;size:32;index:idx_order_items_request"`
	Position         int    `gorm:"column:position"`
	ProductCode      string `gorm:"column:product_code;size:64"`
	CaseQuantity     int64  `gorm:"column:case_quantity"`
	PieceQuantity    int64  `gorm:"column:piece_quantity"`
	UnitPrice        int64  `gorm:"column:unit_price"`
	UnitsPerCase     int64  `gorm:"column:units_per_case"`
	MinimumOrderUnit int64  `gorm:"column:minimum_order_unit"`
	SupplyQuantity   int64  `gorm:"column:supply_quantity"`
	DCQuantity       int64  `gorm:"column:dc_quantity"`
	TotalUnits       int64  `gorm:"column:total_units"`
	Amount           int64  `gorm:"column:amount"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Create inserts the order and its items in one transaction. A request number
// collision surfaces as ports.ErrDuplicateRequestNumber so the caller can
// retry with a fresh number.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record, items := toOrderRecords(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
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
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ports.ErrDuplicateRequestNumber
		}
		return nil, err
	}
	return r.GetByRequestNumber(ctx, order.RequestNumber)
}

func (r *OrderRepository) RecordOutcome(ctx context.Context, requestNumber string, status domain.ApprovalStatus, approvedAmount int64, failureReason string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if !domain.ValidStatus(status) {
		return domain.ErrInvalidStatus
	}
	result := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("request_number = ?", requestNumber).
		Updates(map[string]any{
			"status":                string(status),
			"total_approved_amount": approvedAmount,
			"failure_reason":        failureReason,
			"updated_at":            gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) GetByRequestNumber(ctx context.Context, requestNumber string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "request_number = ?", requestNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrOrderNotFound
		}
		return nil, err
	}
	var items []orderItemRecord
	if err := r.db.WithContext(ctx).
		Where("request_number = ?", requestNumber).
		Order("position asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return record.toDomain(items), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("order_date desc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		var items []orderItemRecord
		if err := r.db.WithContext(ctx).
			Where("request_number = ?", records[i].RequestNumber).
			Order("position asc").
			Find(&items).Error; err != nil {
			return nil, err
		}
		orders = append(orders, records[i].toDomain(items))
	}
	return orders, nil
}

func (r *OrderRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toOrderRecords(order *domain.Order) (orderRecord, []orderItemRecord) {
	record := orderRecord{
		RequestNumber:       order.RequestNumber,
		UserID:              order.UserID,
		ClientID:            order.ClientID,
		OrderDate:           order.OrderDate,
		DeliveryDate:        order.DeliveryDate,
		TotalAmount:         order.TotalAmount,
		TotalApprovedAmount: order.TotalApprovedAmount,
		Status:              string(order.Status),
		FailureReason:       order.FailureReason,
	}
	items := make([]orderItemRecord, 0, len(order.Items))
	for i, item := range order.Items {
		items = append(items, orderItemRecord{
			RequestNumber:    order.RequestNumber,
			Position:         i,
			ProductCode:      item.ProductCode,
			CaseQuantity:     item.CaseQuantity,
			PieceQuantity:    item.PieceQuantity,
			UnitPrice:        item.Facts.UnitPrice,
			UnitsPerCase:     item.Facts.UnitsPerCase,
			MinimumOrderUnit: item.Facts.MinimumOrderUnit,
			SupplyQuantity:   item.Facts.SupplyQuantity,
			DCQuantity:       item.Facts.DCQuantity,
			TotalUnits:       item.TotalUnits,
			Amount:           item.Amount,
		})
	}
	return record, items
}

func (r orderRecord) toDomain(items []orderItemRecord) *domain.Order {
	order := &domain.Order{
		RequestNumber:       r.RequestNumber,
		UserID:              r.UserID,
		ClientID:            r.ClientID,
		OrderDate:           r.OrderDate,
		DeliveryDate:        r.DeliveryDate,
		TotalAmount:         r.TotalAmount,
		TotalApprovedAmount: r.TotalApprovedAmount,
		Status:              domain.ApprovalStatus(r.Status),
		FailureReason:       r.FailureReason,
	}
	for _, item := range items {
		order.Items = append(order.Items, domain.OrderItem{
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
			TotalUnits: item.TotalUnits,
			Amount:     item.Amount,
		})
	}
	return order
}
