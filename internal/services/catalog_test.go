package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aircon-admin/internal/dto"
	"aircon-admin/internal/entities"
	apperrors "aircon-admin/pkg/errors"
	"aircon-admin/pkg/types"
)

type fakeCategoryRepo struct {
	categories map[uint64]*entities.Category
	services   map[uint64]uint64
	next       uint64
}

func (r *fakeCategoryRepo) GetCategories(ctx context.Context, filter types.Filter) ([]entities.Category, uint64, error) {
	out := make([]entities.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeCategoryRepo) FindCategory(ctx context.Context, id uint64) (*entities.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return c, nil
}

func (r *fakeCategoryRepo) CreateCategory(ctx context.Context, category entities.Category) (*entities.Category, error) {
	for _, c := range r.categories {
		if c.Name == category.Name {
			return nil, apperrors.NewValidationError("name", "has already been taken")
		}
	}
	r.next++
	category.ID = r.next
	r.categories[category.ID] = &category
	return &category, nil
}

func (r *fakeCategoryRepo) UpdateCategory(ctx context.Context, category entities.Category) (*entities.Category, error) {
	if _, ok := r.categories[category.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	r.categories[category.ID] = &category
	return &category, nil
}

func (r *fakeCategoryRepo) DeleteCategory(ctx context.Context, id uint64) error {
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) CountLiveServices(ctx context.Context, categoryID uint64) (uint64, error) {
	return r.services[categoryID], nil
}

type fakeServiceRepo struct {
	services map[uint64]*entities.Service
	next     uint64
	err      error
}

func (r *fakeServiceRepo) GetServices(ctx context.Context, filter types.Filter) ([]entities.Service, uint64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	out := make([]entities.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, *s)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeServiceRepo) FindService(ctx context.Context, id uint64) (*entities.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *s
	copied.CategoryName = "Maintenance"
	return &copied, nil
}

func (r *fakeServiceRepo) CreateService(ctx context.Context, service entities.Service) (*entities.Service, error) {
	r.next++
	service.ID = r.next
	r.services[service.ID] = &service
	return &service, nil
}

func (r *fakeServiceRepo) UpdateService(ctx context.Context, service entities.Service) (*entities.Service, error) {
	if _, ok := r.services[service.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	r.services[service.ID] = &service
	return &service, nil
}

func (r *fakeServiceRepo) LockService(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, ok := r.services[id]; !ok {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *fakeServiceRepo) DeleteService(ctx context.Context, tx pgx.Tx, id uint64) error {
	delete(r.services, id)
	return nil
}

func (r *fakeServiceRepo) ServicePrice(ctx context.Context, id uint64) (decimal.Decimal, error) {
	s, ok := r.services[id]
	if !ok {
		return decimal.Zero, apperrors.ErrNotFound
	}
	return s.Price, nil
}

func newCatalogFixture() (*fakeCategoryRepo, *fakeServiceRepo, *fakeOrderRepo, CatalogServiceInterface) {
	categories := &fakeCategoryRepo{categories: map[uint64]*entities.Category{}, services: map[uint64]uint64{}}
	services := &fakeServiceRepo{services: map[uint64]*entities.Service{}}
	orders := newFakeOrderRepo()
	return categories, services, orders, NewCatalogService(&fakeTxManager{}, categories, services, orders, zap.NewNop())
}

func TestCatalog_CreateServiceRendersPriceLabel(t *testing.T) {
	_, _, _, svc := newCatalogFixture()

	out, err := svc.CreateService(context.Background(), dto.CreateServiceDTO{
		Title:      "  Cuci AC  ",
		CategoryID: 1,
		Price:      decimal.RequireFromString("1250000.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Cuci AC", out.Title)
	assert.Equal(t, "Maintenance", out.CategoryName)
	assert.Equal(t, "Rp. 1.250.000,50", out.PriceLabel)
}

func TestCatalog_PriceChangeLeavesOrderItemsAlone(t *testing.T) {
	_, services, orders, svc := newCatalogFixture()
	ctx := context.Background()

	created, err := svc.CreateService(ctx, dto.CreateServiceDTO{Title: "Cleaning", CategoryID: 1, Price: decimal.NewFromInt(75000)})
	require.NoError(t, err)

	orderSvc := NewOrderService(&fakeTxManager{}, orders, services, zap.NewNop())
	order, err := orderSvc.CreateOrder(ctx, staff, dto.CreateOrderDTO{
		Address: "Jl. Melati 5", Phone: "0812", BrandAC: "Sharp", TechnicianID: 7, VisitDate: "2026-01-10",
		Items: []dto.OrderItemInputDTO{{ServiceID: created.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateService(ctx, created.ID, dto.UpdateServiceDTO{Title: "Cleaning", CategoryID: 1, Price: decimal.NewFromInt(90000)})
	require.NoError(t, err)

	reloaded, err := orderSvc.FindOrder(ctx, staff, order.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(75000).Equal(reloaded.Items[0].UnitPrice))
	assert.True(t, decimal.NewFromInt(150000).Equal(reloaded.TotalPrice))
}

func TestCatalog_DeleteServiceInUseConflicts(t *testing.T) {
	_, services, orders, svc := newCatalogFixture()
	ctx := context.Background()
	services.services[4] = &entities.Service{ID: 4, Title: "Freon", Price: decimal.NewFromInt(250000)}
	orders.seed(entities.Order{Name: "Budi"}, entities.OrderItem{ServiceID: 4, Quantity: 1})

	err := svc.DeleteService(ctx, 4)
	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusConflict, httpErr.Code)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	assert.ErrorIs(t, svc.DeleteService(ctx, 404), apperrors.ErrNotFound)
}

func TestCatalog_DeleteServiceAfterOrdersRemoved(t *testing.T) {
	_, services, orders, svc := newCatalogFixture()
	ctx := context.Background()
	services.services[4] = &entities.Service{ID: 4, Title: "Freon"}
	id := orders.seed(entities.Order{Name: "Budi"}, entities.OrderItem{ServiceID: 4, Quantity: 1})
	_, err := orders.DeleteOrders(ctx, nil, []uint64{id}, staffScope())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteService(ctx, 4))
	assert.Empty(t, services.services)
}

func TestCatalog_DeleteCategoryWithServicesConflicts(t *testing.T) {
	categories, _, _, svc := newCatalogFixture()
	ctx := context.Background()
	categories.categories[2] = &entities.Category{ID: 2, Name: "Repair"}
	categories.services[2] = 3

	err := svc.DeleteCategory(ctx, 2)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	categories.services[2] = 0
	require.NoError(t, svc.DeleteCategory(ctx, 2))
}

func TestCatalog_DuplicateNameIsFieldError(t *testing.T) {
	_, _, _, svc := newCatalogFixture()
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, dto.CreateCategoryDTO{Name: "Repair"})
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, dto.CreateCategoryDTO{Name: " Repair "})
	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Fields, "name")
}

func TestCatalog_StorageFailureIsGeneric(t *testing.T) {
	_, services, _, svc := newCatalogFixture()
	services.err = errors.New("relation does not exist")

	_, _, err := svc.GetServices(context.Background(), types.Filter{})
	assert.ErrorIs(t, err, apperrors.ErrOperationFailed)
}

type fakeTechnicianRepo struct {
	technicians map[uint64]*entities.Technician
	next        uint64
}

func (r *fakeTechnicianRepo) GetTechnicians(ctx context.Context, filter types.Filter) ([]entities.Technician, uint64, error) {
	out := make([]entities.Technician, 0, len(r.technicians))
	for _, t := range r.technicians {
		out = append(out, *t)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeTechnicianRepo) FindTechnician(ctx context.Context, id uint64) (*entities.Technician, error) {
	t, ok := r.technicians[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return t, nil
}

func (r *fakeTechnicianRepo) CreateTechnician(ctx context.Context, tx pgx.Tx, technician entities.Technician) (*entities.Technician, error) {
	if technician.ID == 0 {
		r.next++
		technician.ID = r.next
	}
	r.technicians[technician.ID] = &technician
	return &technician, nil
}

func (r *fakeTechnicianRepo) UpdateTechnician(ctx context.Context, technician entities.Technician) (*entities.Technician, error) {
	if _, ok := r.technicians[technician.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	r.technicians[technician.ID] = &technician
	return &technician, nil
}

func (r *fakeTechnicianRepo) LockTechnician(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, ok := r.technicians[id]; !ok {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *fakeTechnicianRepo) DeleteTechnician(ctx context.Context, tx pgx.Tx, id uint64) error {
	delete(r.technicians, id)
	return nil
}
