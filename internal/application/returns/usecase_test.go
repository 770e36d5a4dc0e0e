package returns

import (
	"context"
	"errors"
	"fmt"
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
	details map[string]entity.SalesDetail // clave "invoiceNum/productCode"
	stock   map[string]int64
	returns []entity.Return
	nextID  int64
}

type fakeInvoiceRepo struct{ s *fakeState }

func (r *fakeInvoiceRepo) Create(*entity.Invoice) error            { return nil }
func (r *fakeInvoiceRepo) CreateDetail(*entity.SalesDetail) error  { return nil }
func (r *fakeInvoiceRepo) GetHeaderView(int64) (*repository.InvoiceHeaderView, error) {
	return nil, nil
}
func (r *fakeInvoiceRepo) ListLineViews(int64) ([]repository.InvoiceLineView, error) {
	return nil, nil
}
func (r *fakeInvoiceRepo) ListHeaders(repository.HeaderFilter) ([]repository.InvoiceHeaderView, error) {
	return nil, nil
}

func (r *fakeInvoiceRepo) GetDetail(num int64, code string) (*entity.SalesDetail, error) {
	d, ok := r.s.details[key(num, code)]
	if !ok {
		return nil, nil
	}
	cp := d
	return &cp, nil
}

type fakeProductRepo struct{ s *fakeState }

func (r *fakeProductRepo) Create(*entity.Product) error  { return nil }
func (r *fakeProductRepo) Update(*entity.Product) error  { return nil }
func (r *fakeProductRepo) Deactivate(string) error       { return nil }
func (r *fakeProductRepo) GetByCode(string) (*entity.Product, error)    { return nil, nil }
func (r *fakeProductRepo) GetForUpdate(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) AdjustStock(code string, delta int64) error {
	r.s.stock[code] += delta
	return nil
}

type fakeReturnRepo struct{ s *fakeState }

func (r *fakeReturnRepo) Create(ret *entity.Return) error {
	r.s.nextID++
	ret.ReturnID = r.s.nextID
	r.s.returns = append(r.s.returns, *ret)
	return nil
}

func (r *fakeReturnRepo) GetView(id int64) (*repository.ReturnView, error) {
	for _, ret := range r.s.returns {
		if ret.ReturnID == id {
			return &repository.ReturnView{Return: ret, ProductName: "Teclado", ProcessedBy: "Asha Rao"}, nil
		}
	}
	return nil, nil
}

func (r *fakeReturnRepo) ListViews(limit, offset int) ([]repository.ReturnView, error) {
	var out []repository.ReturnView
	for _, ret := range r.s.returns {
		out = append(out, repository.ReturnView{Return: ret})
	}
	return out, nil
}

type fakeTxRunner struct{ s *fakeState }

func (t *fakeTxRunner) RunReturn(_ context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	returnRepo repository.ReturnRepository,
) error) error {
	returnsSnap := append([]entity.Return(nil), t.s.returns...)
	stockSnap := make(map[string]int64, len(t.s.stock))
	for k, v := range t.s.stock {
		stockSnap[k] = v
	}
	if err := fn(&fakeInvoiceRepo{t.s}, &fakeProductRepo{t.s}, &fakeReturnRepo{t.s}); err != nil {
		t.s.returns = returnsSnap
		t.s.stock = stockSnap
		return err
	}
	return nil
}

func key(num int64, code string) string {
	return fmt.Sprintf("%d/%s", num, code)
}

func newState() *fakeState {
	s := &fakeState{
		details: make(map[string]entity.SalesDetail),
		stock:   map[string]int64{"PC001": 5},
	}
	s.details[key(1, "PC001")] = entity.SalesDetail{
		InvoiceNum: 1, ProductCode: "PC001", Quantity: 3, SellingPrice: dec("230.00"),
	}
	return s
}

func validRequest() dto.CreateReturnRequest {
	return dto.CreateReturnRequest{
		InvoiceNum:   1,
		ProductCode:  "PC001",
		QtyReturned:  2,
		Reason:       "defectuoso",
		RefundAmount: dec("460.00"),
		ProcessEmpID: 4,
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreateReturn_OK(t *testing.T) {
	s := newState()
	uc := NewUseCase(&fakeTxRunner{s}, &fakeReturnRepo{s})

	resp, err := uc.CreateReturn(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ReturnID)
	assert.Equal(t, int64(2), resp.QtyReturned)
	assert.Equal(t, int64(5), s.stock["PC001"], "sin restock el stock no cambia")
}

func TestCreateReturn_ConRestock(t *testing.T) {
	s := newState()
	uc := NewUseCase(&fakeTxRunner{s}, &fakeReturnRepo{s})

	in := validRequest()
	in.Restock = true
	_, err := uc.CreateReturn(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.stock["PC001"])
}

// Tope por devolución: la cantidad no puede superar la vendida en la línea.
func TestCreateReturn_CantidadSuperaLaVendida(t *testing.T) {
	s := newState()
	uc := NewUseCase(&fakeTxRunner{s}, &fakeReturnRepo{s})

	in := validRequest()
	in.QtyReturned = 4 // vendidos: 3
	_, err := uc.CreateReturn(context.Background(), in)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Empty(t, s.returns)
}

func TestCreateReturn_ParFacturaProductoInexistente(t *testing.T) {
	s := newState()
	uc := NewUseCase(&fakeTxRunner{s}, &fakeReturnRepo{s})

	in := validRequest()
	in.ProductCode = "NOPE"
	_, err := uc.CreateReturn(context.Background(), in)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCreateReturn_EntradaInvalida(t *testing.T) {
	s := newState()
	uc := NewUseCase(&fakeTxRunner{s}, &fakeReturnRepo{s})

	cases := []func(*dto.CreateReturnRequest){
		func(r *dto.CreateReturnRequest) { r.InvoiceNum = 0 },
		func(r *dto.CreateReturnRequest) { r.ProductCode = "" },
		func(r *dto.CreateReturnRequest) { r.QtyReturned = 0 },
		func(r *dto.CreateReturnRequest) { r.ProcessEmpID = 0 },
		func(r *dto.CreateReturnRequest) { r.RefundAmount = dec("-1") },
	}
	for _, mutate := range cases {
		in := validRequest()
		mutate(&in)
		_, err := uc.CreateReturn(context.Background(), in)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	}
}

func TestGetReturn_NoExiste(t *testing.T) {
	s := newState()
	uc := NewUseCase(&fakeTxRunner{s}, &fakeReturnRepo{s})

	_, err := uc.GetReturn(context.Background(), 99)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
