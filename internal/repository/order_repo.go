package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MRinuka/yeng-app/internal/model"
)

// ErrInsufficientStock 下单时库存不足（在事务内检测）
var ErrInsufficientStock = errors.New("商品库存不足")

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	// CreateWithItems 在单个事务内创建订单 + 明细，扣减库存并清空购物车
	CreateWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) error
	GetOwned(ctx context.Context, id, userID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
}

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepo 创建 OrderRepository 实例
func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) CreateWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.OrderID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		// 条件扣减库存；受影响行数为 0 说明库存不足，回滚整单
		for _, item := range items {
			result := tx.Model(&model.Product{}).
				Where("product_id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		}

		return tx.Where("user_id = ?", order.UserID).Delete(&model.CartItem{}).Error
	})
}

func (r *orderRepo) GetOwned(ctx context.Context, id, userID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("order_id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}
