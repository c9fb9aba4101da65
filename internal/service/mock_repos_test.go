package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/MRinuka/yeng-app/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%03d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock InstructorRepository ──

type mockInstructorRepo struct {
	instructors map[string]*model.Instructor
}

func newMockInstructorRepo() *mockInstructorRepo {
	return &mockInstructorRepo{instructors: make(map[string]*model.Instructor)}
}

func (m *mockInstructorRepo) GetByID(_ context.Context, id string) (*model.Instructor, error) {
	if i, ok := m.instructors[id]; ok {
		return i, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInstructorRepo) GetByUserID(_ context.Context, userID string) (*model.Instructor, error) {
	for _, i := range m.instructors {
		if i.UserID != nil && *i.UserID == userID {
			return i, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInstructorRepo) List(_ context.Context, includeInactive bool) ([]model.Instructor, error) {
	var result []model.Instructor
	for _, i := range m.instructors {
		if !includeInactive && !i.IsActive {
			continue
		}
		result = append(result, *i)
	}
	return result, nil
}

// ── Mock AvailabilityRepository ──

type mockAvailabilityRepo struct {
	windows []model.InstructorAvailability
}

func newMockAvailabilityRepo() *mockAvailabilityRepo {
	return &mockAvailabilityRepo{}
}

func (m *mockAvailabilityRepo) ListByInstructorAndDay(_ context.Context, instructorID string, dayOfWeek int) ([]model.InstructorAvailability, error) {
	var result []model.InstructorAvailability
	for _, w := range m.windows {
		if w.InstructorID == instructorID && w.DayOfWeek == dayOfWeek && w.IsActive {
			result = append(result, w)
		}
	}
	return result, nil
}

func (m *mockAvailabilityRepo) ListByInstructor(_ context.Context, instructorID string) ([]model.InstructorAvailability, error) {
	var result []model.InstructorAvailability
	for _, w := range m.windows {
		if w.InstructorID == instructorID && w.IsActive {
			result = append(result, w)
		}
	}
	return result, nil
}

// ── Mock SessionRepository ──

// mockSessionRepo 用有序 ID 列表保证遍历顺序稳定
// failUpdateOnCall > 0 时，第 N 次 UpdateStatusIf 调用返回错误（模拟中途故障）
type mockSessionRepo struct {
	sessions         map[string]*model.YogaSession
	order            []string
	updateCalls      int
	failUpdateOnCall int
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.YogaSession)}
}

func (m *mockSessionRepo) put(session *model.YogaSession) {
	if _, ok := m.sessions[session.SessionID]; !ok {
		m.order = append(m.order, session.SessionID)
	}
	m.sessions[session.SessionID] = session
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.YogaSession) error {
	if session.SessionID == "" {
		session.SessionID = fmt.Sprintf("sess-%03d", len(m.sessions)+1)
	}
	m.put(session)
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.YogaSession, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) GetOwned(_ context.Context, id, ownerID string) (*model.YogaSession, error) {
	s, ok := m.sessions[id]
	if !ok || s.UserID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (m *mockSessionRepo) GetOwnedInStatuses(_ context.Context, id, ownerID string, statuses []model.SessionStatus) (*model.YogaSession, error) {
	s, ok := m.sessions[id]
	if !ok || s.UserID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	for _, st := range statuses {
		if s.Status == st {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) ListByOwner(_ context.Context, ownerID string, status *model.SessionStatus) ([]model.YogaSession, error) {
	var result []model.YogaSession
	for _, id := range m.order {
		s := m.sessions[id]
		if s.UserID != ownerID {
			continue
		}
		if status != nil && s.Status != *status {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSessionRepo) ListByInstructor(_ context.Context, instructorID string, status *model.SessionStatus) ([]model.YogaSession, error) {
	var result []model.YogaSession
	for _, id := range m.order {
		s := m.sessions[id]
		if s.InstructorID != instructorID {
			continue
		}
		if status != nil && s.Status != *status {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSessionRepo) Save(_ context.Context, session *model.YogaSession) error {
	m.put(session)
	return nil
}

func (m *mockSessionRepo) UpdateStatusIf(_ context.Context, id string, from, to model.SessionStatus) (int64, error) {
	m.updateCalls++
	if m.failUpdateOnCall > 0 && m.updateCalls == m.failUpdateOnCall {
		return 0, fmt.Errorf("数据库连接中断")
	}
	s, ok := m.sessions[id]
	if !ok || s.Status != from {
		return 0, nil
	}
	s.Status = to
	return 1, nil
}

// ── Mock ProductRepository ──

type mockProductRepo struct {
	products map[string]*model.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[string]*model.Product)}
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*model.Product, error) {
	if p, ok := m.products[id]; ok && p.IsActive {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProductRepo) List(_ context.Context) ([]model.Product, error) {
	var result []model.Product
	for _, p := range m.products {
		if p.IsActive {
			result = append(result, *p)
		}
	}
	return result, nil
}

// ── Mock CartRepository ──

type mockCartRepo struct {
	products *mockProductRepo
	items    map[string]*model.CartItem // key: userID + "/" + productID
	order    []string
}

func newMockCartRepo(products *mockProductRepo) *mockCartRepo {
	return &mockCartRepo{products: products, items: make(map[string]*model.CartItem)}
}

func cartKey(userID, productID string) string {
	return userID + "/" + productID
}

func (m *mockCartRepo) ListByUser(_ context.Context, userID string) ([]model.CartItem, error) {
	var result []model.CartItem
	for _, key := range m.order {
		item, ok := m.items[key]
		if !ok || item.UserID != userID {
			continue
		}
		out := *item
		if p, ok := m.products.products[item.ProductID]; ok {
			out.Product = p
		}
		result = append(result, out)
	}
	return result, nil
}

func (m *mockCartRepo) GetItem(_ context.Context, userID, productID string) (*model.CartItem, error) {
	if item, ok := m.items[cartKey(userID, productID)]; ok {
		return item, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCartRepo) Create(_ context.Context, item *model.CartItem) error {
	key := cartKey(item.UserID, item.ProductID)
	if _, ok := m.items[key]; !ok {
		m.order = append(m.order, key)
	}
	m.items[key] = item
	return nil
}

func (m *mockCartRepo) Update(_ context.Context, item *model.CartItem) error {
	m.items[cartKey(item.UserID, item.ProductID)] = item
	return nil
}

func (m *mockCartRepo) Delete(_ context.Context, userID, productID string) error {
	delete(m.items, cartKey(userID, productID))
	return nil
}

func (m *mockCartRepo) ClearByUser(_ context.Context, userID string) error {
	for key, item := range m.items {
		if item.UserID == userID {
			delete(m.items, key)
		}
	}
	return nil
}

// ── Mock OrderRepository ──

// mockOrderRepo 模拟事务语义：库存不足时不落库、不清购物车
type mockOrderRepo struct {
	products *mockProductRepo
	carts    *mockCartRepo
	orders   map[string]*model.Order
}

func newMockOrderRepo(products *mockProductRepo, carts *mockCartRepo) *mockOrderRepo {
	return &mockOrderRepo{products: products, carts: carts, orders: make(map[string]*model.Order)}
}

func (m *mockOrderRepo) CreateWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	for _, item := range items {
		p, ok := m.products.products[item.ProductID]
		if !ok || p.Stock < item.Quantity {
			return ErrInsufficientStock
		}
	}
	if order.OrderID == "" {
		order.OrderID = fmt.Sprintf("order-%03d", len(m.orders)+1)
	}
	for i := range items {
		items[i].OrderID = order.OrderID
	}
	order.Items = items
	m.orders[order.OrderID] = order
	for _, item := range items {
		m.products.products[item.ProductID].Stock -= item.Quantity
	}
	return m.carts.ClearByUser(ctx, order.UserID)
}

func (m *mockOrderRepo) GetOwned(_ context.Context, id, userID string) (*model.Order, error) {
	o, ok := m.orders[id]
	if !ok || o.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	out := *o
	for i := range out.Items {
		if p, ok := m.products.products[out.Items[i].ProductID]; ok {
			out.Items[i].Product = p
		}
	}
	return &out, nil
}

func (m *mockOrderRepo) ListByUser(_ context.Context, userID string) ([]model.Order, error) {
	var result []model.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			result = append(result, *o)
		}
	}
	return result, nil
}
