package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MRinuka/yeng-app/internal/dto"
	"github.com/MRinuka/yeng-app/internal/service"
	"github.com/MRinuka/yeng-app/pkg/response"
)

// StoreHandler 商城模块 HTTP 处理器
type StoreHandler struct {
	storeSvc service.StoreService
}

// NewStoreHandler 创建 StoreHandler
func NewStoreHandler(storeSvc service.StoreService) *StoreHandler {
	return &StoreHandler{storeSvc: storeSvc}
}

// ListProducts 商品列表
// GET /api/v1/store/products
func (h *StoreHandler) ListProducts(c *gin.Context) {
	products, err := h.storeSvc.ListProducts(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": products})
}

// GetProduct 商品详情
// GET /api/v1/store/products/:id
func (h *StoreHandler) GetProduct(c *gin.Context) {
	product, err := h.storeSvc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleStoreError(c, err)
		return
	}
	response.OK(c, product)
}

// GetCart 购物车
// GET /api/v1/store/cart
func (h *StoreHandler) GetCart(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cart, err := h.storeSvc.GetCart(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, cart)
}

// AddCartItem 加入购物车
// POST /api/v1/store/cart/items
func (h *StoreHandler) AddCartItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cart, err := h.storeSvc.AddToCart(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleStoreError(c, err)
		return
	}
	response.OK(c, cart)
}

// UpdateCartItem 修改购物车数量
// PUT /api/v1/store/cart/items/:productId
func (h *StoreHandler) UpdateCartItem(c *gin.Context) {
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cart, err := h.storeSvc.UpdateCartItem(c.Request.Context(), userID, c.Param("productId"), req.Quantity)
	if err != nil {
		h.handleStoreError(c, err)
		return
	}
	response.OK(c, cart)
}

// RemoveCartItem 移除购物车商品
// DELETE /api/v1/store/cart/items/:productId
func (h *StoreHandler) RemoveCartItem(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.storeSvc.RemoveCartItem(c.Request.Context(), userID, c.Param("productId")); err != nil {
		h.handleStoreError(c, err)
		return
	}
	response.OK(c, nil)
}

// Checkout 购物车结算下单
// POST /api/v1/store/orders
func (h *StoreHandler) Checkout(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	order, err := h.storeSvc.Checkout(c.Request.Context(), userID)
	if err != nil {
		h.handleStoreError(c, err)
		return
	}
	response.Created(c, order)
}

// ListOrders 订单列表
// GET /api/v1/store/orders
func (h *StoreHandler) ListOrders(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	orders, err := h.storeSvc.ListOrders(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": orders})
}

// GetOrder 订单详情
// GET /api/v1/store/orders/:id
func (h *StoreHandler) GetOrder(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	order, err := h.storeSvc.GetOrder(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleStoreError(c, err)
		return
	}
	response.OK(c, order)
}

// handleStoreError 统一处理商城模块业务错误
func (h *StoreHandler) handleStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		response.NotFound(c, 14001, "商品不存在或已下架")
	case errors.Is(err, service.ErrCartItemNotFound):
		response.NotFound(c, 14002, "购物车中不存在该商品")
	case errors.Is(err, service.ErrCartEmpty):
		response.BadRequest(c, 14003, "购物车为空")
	case errors.Is(err, service.ErrInsufficientStock):
		response.BadRequest(c, 14004, "商品库存不足")
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, 14005, "订单不存在")
	default:
		response.InternalError(c)
	}
}
