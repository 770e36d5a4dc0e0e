package supply

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/metromart-pos/internal/application/dto"
	"github.com/tu-usuario/metromart-pos/internal/domain"
	"github.com/tu-usuario/metromart-pos/internal/domain/entity"
	"github.com/tu-usuario/metromart-pos/internal/domain/repository"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakeState struct {
	orders   map[int64]*entity.SupplyOrder
	details  map[int64][]*entity.SupplyOrderDetail
	stock    map[string]int64
	supplier *entity.Supplier
	nextNum  int64
}

type fakeOrderRepo struct{ s *fakeState }

func (r *fakeOrderRepo) CreateOrder(order *entity.SupplyOrder) error {
	r.s.nextNum++
	order.OrderNum = r.s.nextNum
	cp := *order
	r.s.orders[order.OrderNum] = &cp
	return nil
}

func (r *fakeOrderRepo) CreateDetail(detail *entity.SupplyOrderDetail) error {
	cp := *detail
	r.s.details[detail.OrderNum] = append(r.s.details[detail.OrderNum], &cp)
	return nil
}

func (r *fakeOrderRepo) GetOrderForUpdate(orderNum int64) (*entity.SupplyOrder, error) {
	o, ok := r.s.orders[orderNum]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetOrder(orderNum int64) (*entity.SupplyOrder, error) {
	return r.GetOrderForUpdate(orderNum)
}

func (r *fakeOrderRepo) ListDetails(orderNum int64) ([]*entity.SupplyOrderDetail, error) {
	return r.s.details[orderNum], nil
}

func (r *fakeOrderRepo) MarkReceived(orderNum int64) error {
	r.s.orders[orderNum].Status = entity.SupplyOrderReceived
	return nil
}

type fakeProductRepo struct{ s *fakeState }

func (r *fakeProductRepo) Create(*entity.Product) error                 { return nil }
func (r *fakeProductRepo) Update(*entity.Product) error                 { return nil }
func (r *fakeProductRepo) Deactivate(string) error                      { return nil }
func (r *fakeProductRepo) GetByCode(string) (*entity.Product, error)    { return nil, nil }
func (r *fakeProductRepo) GetForUpdate(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) AdjustStock(code string, delta int64) error {
	r.s.stock[code] += delta
	return nil
}

type fakeSupplierRepo struct{ s *fakeState }

func (r *fakeSupplierRepo) Create(*entity.Supplier) error { return nil }
func (r *fakeSupplierRepo) Update(*entity.Supplier) error { return nil }
func (r *fakeSupplierRepo) Deactivate(int64) error        { return nil }
func (r *fakeSupplierRepo) List(bool, int, int) ([]*entity.Supplier, error) {
	return nil, nil
}

func (r *fakeSupplierRepo) GetByID(id int64) (*entity.Supplier, error) {
	if r.s.supplier != nil && r.s.supplier.ID == id {
		return r.s.supplier, nil
	}
	return nil, nil
}

type fakeTxRunner struct{ s *fakeState }

func (t *fakeTxRunner) RunSupply(_ context.Context, fn func(
	orderRepo repository.SupplyOrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(&fakeOrderRepo{t.s}, &fakeProductRepo{t.s})
}

func newState() *fakeState {
	return &fakeState{
		orders:   make(map[int64]*entity.SupplyOrder),
		details:  make(map[int64][]*entity.SupplyOrderDetail),
		stock:    map[string]int64{"PC001": 10, "PC002": 4},
		supplier: &entity.Supplier{ID: 1, Name: "TechnoDistribuciones", Active: true},
	}
}

func newUseCase(s *fakeState) *UseCase {
	return NewUseCase(&fakeTxRunner{s}, &fakeOrderRepo{s}, &fakeSupplierRepo{s})
}

func orderRequest() dto.CreateSupplyOrderRequest {
	return dto.CreateSupplyOrderRequest{
		SupplierID: 1,
		Items: []dto.SupplyOrderItemRequest{
			{ProductCode: "PC001", Quantity: 20, CostPrice: dec("150.00")},
			{ProductCode: "PC002", Quantity: 10, CostPrice: dec("120.00")},
		},
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreateOrder_CalculaTotalYQuedaPendiente(t *testing.T) {
	s := newState()
	uc := newUseCase(s)

	resp, err := uc.CreateOrder(context.Background(), orderRequest())
	require.NoError(t, err)

	// 20×150 + 10×120 = 4200
	assert.True(t, resp.TotalAmount.Equal(dec("4200.00")), "total: %s", resp.TotalAmount)
	assert.Equal(t, entity.SupplyOrderPending, resp.Status)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, int64(10), s.stock["PC001"], "crear la orden no toca el stock")
}

func TestCreateOrder_ProveedorInexistente(t *testing.T) {
	s := newState()
	uc := newUseCase(s)

	in := orderRequest()
	in.SupplierID = 99
	_, err := uc.CreateOrder(context.Background(), in)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReceiveOrder_IncrementaStockYMarcaRecibida(t *testing.T) {
	s := newState()
	uc := newUseCase(s)

	created, err := uc.CreateOrder(context.Background(), orderRequest())
	require.NoError(t, err)

	resp, err := uc.ReceiveOrder(context.Background(), created.OrderNum)
	require.NoError(t, err)
	assert.Equal(t, entity.SupplyOrderReceived, resp.Status)
	assert.Equal(t, int64(30), s.stock["PC001"])
	assert.Equal(t, int64(14), s.stock["PC002"])
}

func TestReceiveOrder_YaRecibidaEsConflicto(t *testing.T) {
	s := newState()
	uc := newUseCase(s)

	created, err := uc.CreateOrder(context.Background(), orderRequest())
	require.NoError(t, err)

	_, err = uc.ReceiveOrder(context.Background(), created.OrderNum)
	require.NoError(t, err)

	_, err = uc.ReceiveOrder(context.Background(), created.OrderNum)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, int64(30), s.stock["PC001"], "la segunda recepción no duplica el ingreso")
}

func TestReceiveOrder_NoExiste(t *testing.T) {
	s := newState()
	uc := newUseCase(s)

	_, err := uc.ReceiveOrder(context.Background(), 42)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
