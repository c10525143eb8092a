package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the orders bounded context. Intended to replace
// adapter-level automigrate in deployments that run migrations up front.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&draftRecord{},
		&draftItemRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&productRecord{},
		&clientRecord{},
	)
}

// Draft schema mirrors the orders Postgres draft adapter. One row per user.
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

// Order schema mirrors the orders Postgres order adapter.
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

// Master-data tables are owned by an upstream sync; migrating them here keeps
// local and test environments self-contained.
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
