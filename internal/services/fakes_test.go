package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"aircon-admin/internal/authz"
	"aircon-admin/internal/entities"
	apperrors "aircon-admin/pkg/errors"
	"aircon-admin/pkg/types"
)

// fakeTxManager runs fn without a transaction. failCommit simulates a failed commit.
type fakeTxManager struct {
	failCommit error
	runs       int
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	m.runs++
	if err := fn(nil); err != nil {
		return err
	}
	return m.failCommit
}

type fakePrices map[uint64]decimal.Decimal

func (p fakePrices) ServicePrice(ctx context.Context, id uint64) (decimal.Decimal, error) {
	price, ok := p[id]
	if !ok {
		return decimal.Zero, apperrors.ErrNotFound
	}
	return price, nil
}

// fakeOrderRepo keeps orders in memory and applies scopes through OrderScope.Allows.
// Services and technicians count as live unless listed as retired.
type fakeOrderRepo struct {
	mu                 sync.Mutex
	orders             map[uint64]*entities.Order
	items              map[uint64][]entities.OrderItem
	nextOrder          uint64
	nextItem           uint64
	titles             map[uint64]string
	retiredServices    map[uint64]bool
	retiredTechnicians map[uint64]bool
	syncErr            error
	syncCalls          int
	totalCalls         int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:             make(map[uint64]*entities.Order),
		items:              make(map[uint64][]entities.OrderItem),
		titles:             make(map[uint64]string),
		retiredServices:    make(map[uint64]bool),
		retiredTechnicians: make(map[uint64]bool),
	}
}

func (r *fakeOrderRepo) seed(order entities.Order, items ...entities.OrderItem) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextOrder++
	order.ID = r.nextOrder
	stored := order
	r.orders[order.ID] = &stored
	for _, item := range items {
		r.nextItem++
		item.ID = r.nextItem
		item.OrderID = order.ID
		r.items[order.ID] = append(r.items[order.ID], item)
	}
	return order.ID
}

func (r *fakeOrderRepo) GetOrders(ctx context.Context, filter types.Filter, scope authz.OrderScope) ([]entities.Order, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]uint64, 0, len(r.orders))
	for id, o := range r.orders {
		if o.DeletedAt == nil && scope.Allows(o) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]entities.Order, len(ids))
	for i, id := range ids {
		out[i] = *r.orders[id]
	}
	return out, uint64(len(out)), nil
}

func (r *fakeOrderRepo) FindOrder(ctx context.Context, tx pgx.Tx, id uint64, scope authz.OrderScope) (*entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.DeletedAt != nil || !scope.Allows(o) {
		return nil, apperrors.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOrderRepo) LockOrder(ctx context.Context, tx pgx.Tx, id uint64, scope authz.OrderScope) (*entities.Order, error) {
	return r.FindOrder(ctx, tx, id, scope)
}

func (r *fakeOrderRepo) GetItems(ctx context.Context, tx pgx.Tx, orderID uint64) ([]entities.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := append([]entities.OrderItem(nil), r.items[orderID]...)
	for i := range items {
		items[i].ServiceTitle = r.titles[items[i].ServiceID]
	}
	return items, nil
}

func (r *fakeOrderRepo) CreateOrder(ctx context.Context, tx pgx.Tx, order entities.Order) (uint64, error) {
	return r.seed(order), nil
}

func (r *fakeOrderRepo) UpdateOrder(ctx context.Context, tx pgx.Tx, order entities.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[order.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	total := stored.TotalPrice
	*stored = order
	stored.TotalPrice = total
	return nil
}

func (r *fakeOrderRepo) UpdateTotal(ctx context.Context, tx pgx.Tx, orderID uint64, total decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.totalCalls++
	stored, ok := r.orders[orderID]
	if !ok {
		return apperrors.ErrNotFound
	}
	stored.TotalPrice = total
	return nil
}

func (r *fakeOrderRepo) SyncItems(ctx context.Context, tx pgx.Tx, orderID uint64, items []entities.OrderItem) ([]entities.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.syncCalls++
	if r.syncErr != nil {
		return nil, r.syncErr
	}
	synced := make([]entities.OrderItem, len(items))
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, errors.New("quantity check violated")
		}
		if item.ID == 0 {
			r.nextItem++
			item.ID = r.nextItem
		}
		item.OrderID = orderID
		synced[i] = item
	}
	r.items[orderID] = synced
	return synced, nil
}

func (r *fakeOrderRepo) DeleteOrders(ctx context.Context, tx pgx.Tx, ids []uint64, scope authz.OrderScope) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	now := time.Now()
	for _, id := range ids {
		o, ok := r.orders[id]
		if ok && o.DeletedAt == nil && scope.Allows(o) {
			o.DeletedAt = &now
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeOrderRepo) CountLiveByService(ctx context.Context, tx pgx.Tx, serviceID uint64) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count uint64
	for id, items := range r.items {
		if r.orders[id].DeletedAt != nil {
			continue
		}
		for _, item := range items {
			if item.ServiceID == serviceID {
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *fakeOrderRepo) CountLiveByTechnician(ctx context.Context, tx pgx.Tx, technicianID uint64) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count uint64
	for _, o := range r.orders {
		if o.DeletedAt == nil && o.TechnicianID == technicianID {
			count++
		}
	}
	return count, nil
}

func (r *fakeOrderRepo) LiveServiceIDs(ctx context.Context, tx pgx.Tx, ids []uint64) ([]uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var live []uint64
	for _, id := range ids {
		if !r.retiredServices[id] {
			live = append(live, id)
		}
	}
	return live, nil
}

func (r *fakeOrderRepo) TechnicianLive(ctx context.Context, tx pgx.Tx, technicianID uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.retiredTechnicians[technicianID], nil
}

func (r *fakeOrderRepo) stored(id uint64) (entities.Order, []entities.OrderItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.orders[id], append([]entities.OrderItem(nil), r.items[id]...)
}

// fakeCache mimics the redis cache repository; misses report redis.Nil.
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
	gets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value.(string)
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type fakePermissionRepo struct {
	grants map[string][]string
	calls  int
	err    error
}

func (r *fakePermissionRepo) GetPermissionsNamesByRoleName(ctx context.Context, roleName string) ([]string, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.grants[roleName], nil
}

func (r *fakePermissionRepo) UpsertPermission(ctx context.Context, tx pgx.Tx, permission entities.Permission) (uint64, error) {
	return 0, errors.New("not implemented")
}

func (r *fakePermissionRepo) ReplaceRolePermissions(ctx context.Context, tx pgx.Tx, roleID uint64, permissionIDs []uint64) error {
	return errors.New("not implemented")
}

type fakeUserRepo struct {
	users map[string]*entities.User
}

func (r *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, tx pgx.Tx, user entities.User) (uint64, error) {
	return 0, errors.New("not implemented")
}
