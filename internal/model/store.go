package model

import "time"

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Product 商品表 — 对应 products
type Product struct {
	ProductID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"product_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	Description string `gorm:"type:varchar(1000);not null;default:''"         json:"description"`
	PriceCents  int64  `gorm:"not null"                                       json:"price_cents"`
	Stock       int    `gorm:"not null;default:0"                             json:"stock"`
	ImageURL    string `gorm:"type:varchar(500);not null;default:''"          json:"image_url"`
	IsActive    bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

func (Product) TableName() string { return "products" }

// CartItem 购物车条目 — 对应 cart_items，(user_id, product_id) 唯一
type CartItem struct {
	CartItemID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"cart_item_id"`
	UserID     string `gorm:"type:uuid;not null;uniqueIndex:uq_cart_user_product" json:"user_id"`
	ProductID  string `gorm:"type:uuid;not null;uniqueIndex:uq_cart_user_product" json:"product_id"`
	Quantity   int    `gorm:"not null"                                       json:"quantity"`
	BaseModel

	// 关联
	Product *Product `gorm:"foreignKey:ProductID;references:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string { return "cart_items" }

// Order 订单表 — 对应 orders
type Order struct {
	OrderID    string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"order_id"`
	UserID     string      `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	TotalCents int64       `gorm:"not null"                                       json:"total_cents"`
	BaseModel

	// 关联
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string { return "orders" }

// OrderItem 订单明细 — 对应 order_items，单价留存下单时快照
type OrderItem struct {
	OrderItemID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"order_item_id"`
	OrderID        string    `gorm:"type:uuid;not null"                             json:"order_id"`
	ProductID      string    `gorm:"type:uuid;not null"                             json:"product_id"`
	Quantity       int       `gorm:"not null"                                       json:"quantity"`
	UnitPriceCents int64     `gorm:"not null"                                       json:"unit_price_cents"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	Product *Product `gorm:"foreignKey:ProductID;references:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string { return "order_items" }
