package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"aircon-admin/internal/authz"
	"aircon-admin/internal/dto"
	"aircon-admin/internal/entities"
	"aircon-admin/pkg/constants"
	apperrors "aircon-admin/pkg/errors"
	"aircon-admin/pkg/types"
	"aircon-admin/pkg/utils"
)

const (
	svcCleaning uint64 = 1
	svcFreon    uint64 = 2
	svcInstall  uint64 = 3
	svcUnpriced uint64 = 8
	svcRetired  uint64 = 9

	retiredTechnicianID uint64 = 13
)

var (
	staff      = authz.Actor{ID: 1, Name: "Admin", Role: authz.RoleStaff}
	customer   = authz.Actor{ID: 20, Name: "Budi", Role: authz.RoleCustomer}
	technician = authz.Actor{ID: 7, Name: "Agus", Role: authz.RoleTechnician}
)

type OrderServiceTestSuite struct {
	suite.Suite
	repo    *fakeOrderRepo
	prices  fakePrices
	tx      *fakeTxManager
	service OrderServiceInterface
	ctx     context.Context
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = newFakeOrderRepo()
	s.repo.titles[svcCleaning] = "Cleaning"
	s.repo.titles[svcFreon] = "Freon refill"
	s.repo.retiredServices[svcRetired] = true
	s.repo.retiredTechnicians[retiredTechnicianID] = true
	s.prices = fakePrices{
		svcCleaning: decimal.NewFromInt(75000),
		svcFreon:    decimal.NewFromInt(250000),
		svcInstall:  decimal.RequireFromString("350000.50"),
	}
	s.tx = &fakeTxManager{}
	s.service = NewOrderService(s.tx, s.repo, s.prices, zap.NewNop())
}

func (s *OrderServiceTestSuite) createPayload(items ...dto.OrderItemInputDTO) dto.CreateOrderDTO {
	return dto.CreateOrderDTO{
		Address:      "Jl. Melati 5",
		Phone:        "0812-9999-0000",
		BrandAC:      "Daikin",
		TechnicianID: technician.ID,
		VisitDate:    "2026-03-02",
		Items:        items,
	}
}

func (s *OrderServiceTestSuite) seedOrder(name string, technicianID uint64, items ...entities.OrderItem) uint64 {
	total := decimal.Zero
	for _, i := range items {
		total = total.Add(i.Subtotal())
	}
	return s.repo.seed(entities.Order{
		Name:         name,
		Address:      "Jl. Kenanga 1",
		Phone:        "081200001111",
		BrandAC:      "LG",
		TechnicianID: technicianID,
		VisitDate:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		TotalPrice:   total,
		Status:       constants.OrderStatusOrdering,
	}, items...)
}

// assertStoredTotal checks the stored total against the stored items.
func (s *OrderServiceTestSuite) assertStoredTotal(id uint64) {
	order, items := s.repo.stored(id)
	sum := decimal.Zero
	for _, i := range items {
		sum = sum.Add(i.Subtotal())
	}
	s.True(sum.Equal(order.TotalPrice), "stored total %s, items sum %s", order.TotalPrice, sum)
}

func (s *OrderServiceTestSuite) TestCreateOrder_ComputesTotalAndDefaults() {
	out, err := s.service.CreateOrder(s.ctx, staff, s.createPayload(
		dto.OrderItemInputDTO{ServiceID: svcCleaning, Quantity: 2},
		dto.OrderItemInputDTO{ServiceID: svcFreon},
	))
	s.Require().NoError(err)

	s.Equal("Admin", out.Name, "name defaults to the acting user")
	s.Equal("081299990000", out.Phone)
	s.Require().NotNil(out.Status)
	s.Equal("ordering", *out.Status)
	s.Equal("primary", *out.StatusColor)
	s.Require().Len(out.Items, 2)
	s.Equal(1, out.Items[1].Quantity, "quantity defaults to 1")
	s.True(decimal.NewFromInt(400000).Equal(out.TotalPrice))
	s.Equal("Rp. 400.000", out.TotalPriceLabel)
	s.Equal("Monday, 02 March 2026", out.VisitDateLabel)
	s.assertStoredTotal(out.ID)
}

func (s *OrderServiceTestSuite) TestCreateOrder_EmptyItemsHaveZeroTotal() {
	out, err := s.service.CreateOrder(s.ctx, staff, s.createPayload())
	s.Require().NoError(err)
	s.True(out.TotalPrice.IsZero())
	s.Empty(out.Items)
}

func (s *OrderServiceTestSuite) TestCreateOrder_FailedPriceLookupCapturesZero() {
	out, err := s.service.CreateOrder(s.ctx, staff, s.createPayload(
		dto.OrderItemInputDTO{ServiceID: svcUnpriced, Quantity: 3},
		dto.OrderItemInputDTO{ServiceID: svcCleaning, Quantity: 1},
	))
	s.Require().NoError(err)
	s.True(out.Items[0].UnitPrice.IsZero())
	s.True(decimal.NewFromInt(75000).Equal(out.TotalPrice))
}

func (s *OrderServiceTestSuite) TestCreateOrder_DeletedServiceRejected() {
	_, err := s.service.CreateOrder(s.ctx, staff, s.createPayload(
		dto.OrderItemInputDTO{ServiceID: svcRetired, Quantity: 4},
		dto.OrderItemInputDTO{ServiceID: svcCleaning, Quantity: 1},
	))
	var vErr *apperrors.ValidationError
	s.Require().True(errors.As(err, &vErr))
	s.Contains(vErr.Fields, "items")
	s.Zero(s.repo.syncCalls)
	s.Empty(s.repo.orders)
}

func (s *OrderServiceTestSuite) TestCreateOrder_DeletedTechnicianRejected() {
	payload := s.createPayload(dto.OrderItemInputDTO{ServiceID: svcCleaning})
	payload.TechnicianID = retiredTechnicianID

	_, err := s.service.CreateOrder(s.ctx, staff, payload)
	var vErr *apperrors.ValidationError
	s.Require().True(errors.As(err, &vErr))
	s.Contains(vErr.Fields, "technician_id")
	s.NotContains(vErr.Fields, "items")
	s.Empty(s.repo.orders)
}

func (s *OrderServiceTestSuite) TestCreateOrder_RejectsDuplicateServiceAndNegativeQuantity() {
	_, err := s.service.CreateOrder(s.ctx, staff, s.createPayload(
		dto.OrderItemInputDTO{ServiceID: svcCleaning},
		dto.OrderItemInputDTO{ServiceID: svcCleaning},
	))
	var vErr *apperrors.ValidationError
	s.Require().True(errors.As(err, &vErr))
	s.Contains(vErr.Fields, "items")

	_, err = s.service.CreateOrder(s.ctx, staff, s.createPayload(dto.OrderItemInputDTO{ServiceID: svcCleaning, Quantity: -1}))
	s.Require().True(errors.As(err, &vErr))
	s.Contains(vErr.Fields, "items")
	s.Zero(s.repo.syncCalls)
}

func (s *OrderServiceTestSuite) TestCreateOrder_CustomerNameIsForced() {
	payload := s.createPayload(dto.OrderItemInputDTO{ServiceID: svcCleaning})
	out, err := s.service.CreateOrder(s.ctx, customer, payload)
	s.Require().NoError(err)
	s.Equal("Budi", out.Name)
	s.Nil(out.Status, "customers do not see the status")

	payload.Name = utils.ToPtr("Budi")
	_, err = s.service.CreateOrder(s.ctx, customer, payload)
	s.NoError(err)

	payload.Name = utils.ToPtr("Siti")
	payload.Status = utils.ToPtr("complete")
	_, err = s.service.CreateOrder(s.ctx, customer, payload)
	var vErr *apperrors.ValidationError
	s.Require().True(errors.As(err, &vErr))
	s.Contains(vErr.Fields, "name")
	s.Contains(vErr.Fields, "status")
}

func (s *OrderServiceTestSuite) TestCreateOrder_TotalPriceIsNeverWritable() {
	payload := s.createPayload()
	payload.TotalPrice = utils.ToPtr("1")
	_, err := s.service.CreateOrder(s.ctx, staff, payload)
	var vErr *apperrors.ValidationError
	s.Require().True(errors.As(err, &vErr))
	s.Contains(vErr.Fields, "total_price")
}

func (s *OrderServiceTestSuite) TestCreateOrder_PersistenceFailureIsGeneric() {
	s.tx.failCommit = errors.New("connection reset")
	_, err := s.service.CreateOrder(s.ctx, staff, s.createPayload(dto.OrderItemInputDTO{ServiceID: svcCleaning}))
	s.ErrorIs(err, apperrors.ErrOperationFailed)

	s.tx.failCommit = nil
	s.repo.syncErr = apperrors.NewValidationError("technician_id", "technician does not exist")
	_, err = s.service.CreateOrder(s.ctx, staff, s.createPayload(dto.OrderItemInputDTO{ServiceID: svcCleaning}))
	var vErr *apperrors.ValidationError
	s.Require().True(errors.As(err, &vErr))
	s.Contains(vErr.Fields, "technician_id")
}

func (s *OrderServiceTestSuite) TestItemMutationsKeepTotalInSync() {
	id := s.seedOrder("Budi", technician.ID)

	out, err := s.service.AddItem(s.ctx, staff, id, dto.AddOrderItemDTO{ServiceID: svcCleaning, Quantity: 2})
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(150000).Equal(out.TotalPrice))
	s.assertStoredTotal(id)

	out, err = s.service.AddItem(s.ctx, staff, id, dto.AddOrderItemDTO{ServiceID: svcInstall})
	s.Require().NoError(err)
	s.True(decimal.RequireFromString("500000.50").Equal(out.TotalPrice))
	s.assertStoredTotal(id)

	cleaningItem := out.Items[0].ID
	out, err = s.service.UpdateItem(s.ctx, staff, id, cleaningItem, dto.UpdateOrderItemDTO{Quantity: utils.ToPtr(3)})
	s.Require().NoError(err)
	s.True(decimal.RequireFromString("575000.50").Equal(out.TotalPrice))
	s.assertStoredTotal(id)

	out, err = s.service.UpdateItem(s.ctx, staff, id, cleaningItem, dto.UpdateOrderItemDTO{ServiceID: utils.ToPtr(svcFreon)})
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(250000).Equal(out.Items[0].UnitPrice))
	s.True(decimal.RequireFromString("1100000.50").Equal(out.TotalPrice))
	s.assertStoredTotal(id)

	out, err = s.service.RemoveItem(s.ctx, staff, id, cleaningItem)
	s.Require().NoError(err)
	s.Len(out.Items, 1)
	s.True(decimal.RequireFromString("350000.50").Equal(out.TotalPrice))
	s.assertStoredTotal(id)
}

func (s *OrderServiceTestSuite) TestSnapshotPriceSurvivesCatalogChange() {
	id := s.seedOrder("Budi", technician.ID,
		entities.OrderItem{ServiceID: svcCleaning, Quantity: 1, UnitPrice: decimal.NewFromInt(60000)},
	)
	items, _ := s.repo.GetItems(s.ctx, nil, id)

	out, err := s.service.UpdateItem(s.ctx, staff, id, items[0].ID, dto.UpdateOrderItemDTO{Quantity: utils.ToPtr(2)})
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(60000).Equal(out.Items[0].UnitPrice), "quantity change keeps the captured price")
	s.True(decimal.NewFromInt(120000).Equal(out.TotalPrice))

	out, err = s.service.UpdateItem(s.ctx, staff, id, items[0].ID, dto.UpdateOrderItemDTO{ServiceID: utils.ToPtr(svcCleaning)})
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(60000).Equal(out.Items[0].UnitPrice), "reselecting the same service keeps the captured price")
}

func (s *OrderServiceTestSuite) TestAddItem_DuplicateServiceRejected() {
	id := s.seedOrder("Budi", technician.ID,
		entities.OrderItem{ServiceID: svcCleaning, Quantity: 1, UnitPrice: decimal.NewFromInt(75000)},
	)
	_, err := s.service.AddItem(s.ctx, staff, id, dto.AddOrderItemDTO{ServiceID: svcCleaning})
	var vErr *apperrors.ValidationError
	s.Require().True(errors.As(err, &vErr))
	s.Contains(vErr.Fields, "service_id")
	s.Zero(s.repo.syncCalls)
}

func (s *OrderServiceTestSuite) TestItemMutations_DeletedServiceRejected() {
	id := s.seedOrder("Budi", technician.ID,
		entities.OrderItem{ServiceID: svcCleaning, Quantity: 1, UnitPrice: decimal.NewFromInt(75000)},
	)
	items, _ := s.repo.GetItems(s.ctx, nil, id)

	_, err := s.service.AddItem(s.ctx, staff, id, dto.AddOrderItemDTO{ServiceID: svcRetired, Quantity: 2})
	var vErr *apperrors.ValidationError
	s.Require().True(errors.As(err, &vErr))
	s.Contains(vErr.Fields, "service_id")

	_, err = s.service.UpdateItem(s.ctx, staff, id, items[0].ID, dto.UpdateOrderItemDTO{ServiceID: utils.ToPtr(svcRetired)})
	s.Require().True(errors.As(err, &vErr))
	s.Contains(vErr.Fields, "service_id")

	s.Zero(s.repo.syncCalls)
	s.assertStoredTotal(id)
}

func (s *OrderServiceTestSuite) TestItemMutations_UnknownItemIsNotFound() {
	id := s.seedOrder("Budi", technician.ID)
	_, err := s.service.RemoveItem(s.ctx, staff, id, 999)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *OrderServiceTestSuite) TestTechnicianCannotEditItems() {
	id := s.seedOrder("Budi", technician.ID)
	_, err := s.service.AddItem(s.ctx, technician, id, dto.AddOrderItemDTO{ServiceID: svcCleaning})
	var vErr *apperrors.ValidationError
	s.Require().True(errors.As(err, &vErr))
	s.Contains(vErr.Fields, "items")
}

func (s *OrderServiceTestSuite) TestUpdateOrder_ReplacesItemsKeepingSnapshots() {
	id := s.seedOrder("Budi", technician.ID,
		entities.OrderItem{ServiceID: svcCleaning, Quantity: 1, UnitPrice: decimal.NewFromInt(60000)},
		entities.OrderItem{ServiceID: svcFreon, Quantity: 1, UnitPrice: decimal.NewFromInt(200000)},
	)
	items, _ := s.repo.GetItems(s.ctx, nil, id)

	out, err := s.service.UpdateOrder(s.ctx, staff, id, dto.UpdateOrderDTO{
		Items: []dto.OrderItemInputDTO{
			{ID: items[0].ID, ServiceID: svcCleaning, Quantity: 2},
			{ServiceID: svcInstall},
		},
	})
	s.Require().NoError(err)
	s.Require().Len(out.Items, 2)
	s.True(decimal.NewFromInt(60000).Equal(out.Items[0].UnitPrice))
	s.True(decimal.RequireFromString("470000.50").Equal(out.TotalPrice))
	s.assertStoredTotal(id)
}

func (s *OrderServiceTestSuite) TestUpdateOrder_SwapsServicesBetweenLines() {
	id := s.seedOrder("Budi", technician.ID,
		entities.OrderItem{ServiceID: svcCleaning, Quantity: 1, UnitPrice: decimal.NewFromInt(60000)},
		entities.OrderItem{ServiceID: svcFreon, Quantity: 1, UnitPrice: decimal.NewFromInt(200000)},
	)
	items, _ := s.repo.GetItems(s.ctx, nil, id)

	out, err := s.service.UpdateOrder(s.ctx, staff, id, dto.UpdateOrderDTO{
		Items: []dto.OrderItemInputDTO{
			{ID: items[0].ID, ServiceID: svcFreon, Quantity: 1},
			{ID: items[1].ID, ServiceID: svcCleaning, Quantity: 1},
		},
	})
	s.Require().NoError(err)
	s.Equal(svcFreon, out.Items[0].ServiceID)
	s.True(decimal.NewFromInt(250000).Equal(out.Items[0].UnitPrice), "a changed service captures the current price")
	s.True(decimal.NewFromInt(325000).Equal(out.TotalPrice))
}

func (s *OrderServiceTestSuite) TestUpdateOrder_DeletedReferencesRejected() {
	id := s.seedOrder("Budi", technician.ID,
		entities.OrderItem{ServiceID: svcRetired, Quantity: 1, UnitPrice: decimal.NewFromInt(90000)},
	)
	items, _ := s.repo.GetItems(s.ctx, nil, id)

	_, err := s.service.UpdateOrder(s.ctx, staff, id, dto.UpdateOrderDTO{TechnicianID: utils.ToPtr(retiredTechnicianID)})
	var vErr *apperrors.ValidationError
	s.Require().True(errors.As(err, &vErr))
	s.Contains(vErr.Fields, "technician_id")

	_, err = s.service.UpdateOrder(s.ctx, staff, id, dto.UpdateOrderDTO{
		Items: []dto.OrderItemInputDTO{
			{ID: items[0].ID, ServiceID: svcRetired, Quantity: 1},
			{ServiceID: svcRetired},
		},
	})
	s.Require().True(errors.As(err, &vErr))
	s.Contains(vErr.Fields, "items")

	_, err = s.service.UpdateOrder(s.ctx, staff, id, dto.UpdateOrderDTO{
		Items: []dto.OrderItemInputDTO{{ServiceID: svcCleaning}, {ServiceID: svcRetired}},
	})
	s.Require().True(errors.As(err, &vErr), "a deleted service cannot come back as a new line")
	s.Contains(vErr.Fields, "items")
	s.Zero(s.repo.syncCalls)

	stored, _ := s.repo.stored(id)
	s.Equal(technician.ID, stored.TechnicianID)

	out, err := s.service.UpdateOrder(s.ctx, staff, id, dto.UpdateOrderDTO{
		Items: []dto.OrderItemInputDTO{{ID: items[0].ID, ServiceID: svcRetired, Quantity: 3}},
	})
	s.Require().NoError(err, "a line already on the order keeps its service")
	s.True(decimal.NewFromInt(270000).Equal(out.TotalPrice))
}

func (s *OrderServiceTestSuite) TestUpdateOrder_ForeignItemLineRejected() {
	id := s.seedOrder("Budi", technician.ID)
	_, err := s.service.UpdateOrder(s.ctx, staff, id, dto.UpdateOrderDTO{
		Items: []dto.OrderItemInputDTO{{ID: 4242, ServiceID: svcCleaning}},
	})
	var vErr *apperrors.ValidationError
	s.Require().True(errors.As(err, &vErr))
	s.Contains(vErr.Fields, "items")
}

func (s *OrderServiceTestSuite) TestUpdateOrder_FieldEditability() {
	id := s.seedOrder("Budi", technician.ID)

	out, err := s.service.UpdateOrder(s.ctx, technician, id, dto.UpdateOrderDTO{
		Status: utils.ToPtr("processing"),
		Note:   utils.ToPtr("bring a ladder"),
	})
	s.Require().NoError(err)
	s.Equal("processing", *out.Status)
	s.Equal("bring a ladder", *out.Note)

	_, err = s.service.UpdateOrder(s.ctx, technician, id, dto.UpdateOrderDTO{Address: utils.ToPtr("Jl. Mawar 9")})
	var vErr *apperrors.ValidationError
	s.Require().True(errors.As(err, &vErr))
	s.Contains(vErr.Fields, "address")

	_, err = s.service.UpdateOrder(s.ctx, customer, id, dto.UpdateOrderDTO{Status: utils.ToPtr("complete")})
	s.Require().True(errors.As(err, &vErr))
	s.Contains(vErr.Fields, "status")

	out, err = s.service.UpdateOrder(s.ctx, customer, id, dto.UpdateOrderDTO{
		Name:    utils.ToPtr("Budi"),
		Address: utils.ToPtr("Jl. Mawar 9"),
	})
	s.Require().NoError(err)
	s.Equal("Jl. Mawar 9", out.Address)

	_, err = s.service.UpdateOrder(s.ctx, staff, id, dto.UpdateOrderDTO{TotalPrice: utils.ToPtr("10")})
	s.Require().True(errors.As(err, &vErr))
	s.Contains(vErr.Fields, "total_price")
}

func (s *OrderServiceTestSuite) TestStatusCanMoveInAnyDirection() {
	id := s.seedOrder("Budi", technician.ID)
	for _, status := range []string{"complete", "ordering", "processing"} {
		out, err := s.service.UpdateOrder(s.ctx, staff, id, dto.UpdateOrderDTO{Status: utils.ToPtr(status)})
		s.Require().NoError(err)
		s.Equal(status, *out.Status)
	}
}

func (s *OrderServiceTestSuite) TestVisibilityByRole() {
	budi := s.seedOrder("Budi", technician.ID)
	siti := s.seedOrder("Siti", 8)
	s.seedOrder("Budi", 8)

	list, total, err := s.service.GetOrders(s.ctx, customer, types.Filter{})
	s.Require().NoError(err)
	s.EqualValues(2, total)
	for _, o := range list {
		s.Equal("Budi", o.Name)
		s.Nil(o.Status)
	}

	list, total, err = s.service.GetOrders(s.ctx, technician, types.Filter{})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Equal(budi, list[0].ID)

	_, total, err = s.service.GetOrders(s.ctx, staff, types.Filter{})
	s.Require().NoError(err)
	s.EqualValues(3, total)

	_, total, err = s.service.GetOrders(s.ctx, authz.Actor{ID: 5, Name: "Budi", Role: "guest"}, types.Filter{})
	s.Require().NoError(err)
	s.Zero(total)

	_, err = s.service.FindOrder(s.ctx, customer, siti)
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = s.service.UpdateOrder(s.ctx, technician, siti, dto.UpdateOrderDTO{Status: utils.ToPtr("complete")})
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.ErrorIs(s.service.DeleteOrder(s.ctx, customer, siti), apperrors.ErrNotFound)
}

func (s *OrderServiceTestSuite) TestDeleteOrders_SkipsInvisibleRows() {
	budi := s.seedOrder("Budi", technician.ID)
	siti := s.seedOrder("Siti", technician.ID)

	deleted, err := s.service.DeleteOrders(s.ctx, customer, []uint64{budi, siti})
	s.Require().NoError(err)
	s.EqualValues(1, deleted)

	_, err = s.service.FindOrder(s.ctx, staff, budi)
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = s.service.FindOrder(s.ctx, staff, siti)
	s.NoError(err)
}

func (s *OrderServiceTestSuite) TestQuoteOrder() {
	quote, err := s.service.QuoteOrder(s.ctx, customer, dto.QuoteOrderDTO{Items: []dto.OrderItemInputDTO{
		{ServiceID: svcCleaning, Quantity: 2},
		{ServiceID: svcUnpriced},
	}})
	s.Require().NoError(err)
	s.Require().Len(quote.Items, 2)
	s.True(quote.Items[1].UnitPrice.IsZero())
	s.True(decimal.NewFromInt(150000).Equal(quote.Total))
	s.Equal("Rp. 150.000", quote.TotalLabel)
	s.Zero(s.repo.syncCalls, "quotes are never persisted")

	_, err = s.service.QuoteOrder(s.ctx, customer, dto.QuoteOrderDTO{Items: []dto.OrderItemInputDTO{
		{ServiceID: svcCleaning}, {ServiceID: svcCleaning},
	}})
	var vErr *apperrors.ValidationError
	s.True(errors.As(err, &vErr))

	_, err = s.service.QuoteOrder(s.ctx, customer, dto.QuoteOrderDTO{Items: []dto.OrderItemInputDTO{{ServiceID: svcRetired}}})
	s.Require().True(errors.As(err, &vErr))
	s.Contains(vErr.Fields, "items")
}

func (s *OrderServiceTestSuite) TestExportOrders_IgnoresPagination() {
	for i := 0; i < 3; i++ {
		s.seedOrder("Budi", technician.ID)
	}
	orders, err := s.service.ExportOrders(s.ctx, customer, types.Filter{WithPagination: true, Limit: 1})
	s.Require().NoError(err)
	s.Len(orders, 3)
}

func TestBlankToNull(t *testing.T) {
	assert.False(t, blankToNull(null.StringFrom("   ")).Valid)
	assert.False(t, blankToNull(null.String{}).Valid)
	require.True(t, blankToNull(null.StringFrom(" call first ")).Valid)
	assert.Equal(t, "call first", blankToNull(null.StringFrom(" call first ")).String)
}
