package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
	"github.com/fieldops/salesorder-api/internal/domains/orders/ports"
)

var _ ports.ReferenceLookup = (*Reference)(nil)

// Reference reads product and client master data from PostgreSQL. The tables
// are owned by an upstream master-data sync; this adapter never writes them.
type Reference struct {
	db *gorm.DB
}

func NewReference(db *gorm.DB) *Reference {
	return &Reference{db: db}
}

type productRecord struct {
	ProductCode      string    `gorm:"primaryKey;column:product_code;size:64"`
	Name             string    `gorm:"column:name"`
	UnitPrice        int64     `gorm:"column:unit_price"`
	UnitsPerCase     int64     `gorm:"column:units_per_case"`
	MinimumOrderUnit int64     `gorm:"column:minimum_order_unit"`
	SupplyQuantity   int64     `gorm:"column:supply_quantity"`
	DCQuantity       int64     `gorm:"column:dc_quantity"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

type clientRecord struct {
	ClientID    string    `gorm:"primaryKey;column:client_id;size:64"`
	Name        string    `gorm:"column:name"`
	CreditLimit int64     `gorm:"column:credit_limit"`
	UsedCredit  int64     `gorm:"column:used_credit"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (clientRecord) TableName() string { return "clients" }

func (r *Reference) ResolveClient(ctx context.Context, clientID string) (*ports.ClientFacts, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record clientRecord
	if err := r.db.WithContext(ctx).First(&record, "client_id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrClientNotFound
		}
		return nil, err
	}
	return &ports.ClientFacts{
		ClientID:    record.ClientID,
		CreditLimit: record.CreditLimit,
		UsedCredit:  record.UsedCredit,
	}, nil
}

func (r *Reference) ResolveProducts(ctx context.Context, codes []string) (map[string]domain.ProductFacts, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return map[string]domain.ProductFacts{}, nil
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Where("product_code IN ?", codes).Find(&records).Error; err != nil {
		return nil, err
	}
	result := make(map[string]domain.ProductFacts, len(records))
	for _, record := range records {
		result[record.ProductCode] = domain.ProductFacts{
			ProductCode:      record.ProductCode,
			UnitPrice:        record.UnitPrice,
			UnitsPerCase:     record.UnitsPerCase,
			MinimumOrderUnit: record.MinimumOrderUnit,
			SupplyQuantity:   record.SupplyQuantity,
			DCQuantity:       record.DCQuantity,
		}
	}
	return result, nil
}

func (r *Reference) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres reference lookup not configured")
	}
	return nil
}
