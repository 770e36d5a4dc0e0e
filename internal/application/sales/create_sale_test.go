package sales

import (
	"context"
	"errors"
	"testing"
	"time"

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

// ── Fakes en memoria ──────────────────────────────────────────────────────────
//
// fakeStore simula la base de datos; fakeTxRunner toma un snapshot antes de
// ejecutar el callback y lo restaura si este falla, reproduciendo la semántica
// de rollback de la transacción real.

type fakeStore struct {
	products    map[string]*entity.Product
	invoices    map[int64]*entity.Invoice
	details     []entity.SalesDetail
	nextInvoice int64
	nextDetail  int64

	lockOrder        []string // códigos en orden de GetForUpdate
	failCreateDetail bool     // simula fallo de storage a mitad de la tx
}

func newFakeStore(products ...*entity.Product) *fakeStore {
	s := &fakeStore{
		products:    make(map[string]*entity.Product),
		invoices:    make(map[int64]*entity.Invoice),
		nextInvoice: 1,
		nextDetail:  1,
	}
	for _, p := range products {
		cp := *p
		s.products[p.Code] = &cp
	}
	return s
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := &fakeStore{
		products:    make(map[string]*entity.Product, len(s.products)),
		invoices:    make(map[int64]*entity.Invoice, len(s.invoices)),
		details:     append([]entity.SalesDetail(nil), s.details...),
		nextInvoice: s.nextInvoice,
		nextDetail:  s.nextDetail,
	}
	for k, v := range s.products {
		p := *v
		cp.products[k] = &p
	}
	for k, v := range s.invoices {
		inv := *v
		cp.invoices[k] = &inv
	}
	return cp
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.products = snap.products
	s.invoices = snap.invoices
	s.details = snap.details
	s.nextInvoice = snap.nextInvoice
	s.nextDetail = snap.nextDetail
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(*entity.Product) error  { return nil }
func (r *fakeProductRepo) Update(*entity.Product) error  { return nil }
func (r *fakeProductRepo) Deactivate(string) error       { return nil }
func (r *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) GetByCode(code string) (*entity.Product, error) {
	p, ok := r.s.products[code]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(code string) (*entity.Product, error) {
	r.s.lockOrder = append(r.s.lockOrder, code)
	return r.GetByCode(code)
}

func (r *fakeProductRepo) AdjustStock(code string, delta int64) error {
	p, ok := r.s.products[code]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += delta
	return nil
}

type fakeInvoiceRepo struct{ s *fakeStore }

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	inv.InvoiceNum = r.s.nextInvoice
	r.s.nextInvoice++
	cp := *inv
	r.s.invoices[inv.InvoiceNum] = &cp
	return nil
}

func (r *fakeInvoiceRepo) CreateDetail(d *entity.SalesDetail) error {
	if r.s.failCreateDetail {
		return errors.New("insert sales detail: connection reset")
	}
	d.ID = r.s.nextDetail
	r.s.nextDetail++
	r.s.details = append(r.s.details, *d)
	return nil
}

func (r *fakeInvoiceRepo) GetHeaderView(num int64) (*repository.InvoiceHeaderView, error) {
	inv, ok := r.s.invoices[num]
	if !ok {
		return nil, nil
	}
	view := &repository.InvoiceHeaderView{Invoice: *inv, EmployeeName: "Asha Rao"}
	if inv.CustomerID != nil {
		view.CustomerName = "Priya Nair"
	}
	return view, nil
}

func (r *fakeInvoiceRepo) ListLineViews(num int64) ([]repository.InvoiceLineView, error) {
	var out []repository.InvoiceLineView
	for _, d := range r.s.details {
		if d.InvoiceNum == num {
			out = append(out, repository.InvoiceLineView{Detail: d, ProductName: "Producto " + d.ProductCode})
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) GetDetail(num int64, code string) (*entity.SalesDetail, error) {
	for _, d := range r.s.details {
		if d.InvoiceNum == num && d.ProductCode == code {
			cp := d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) ListHeaders(f repository.HeaderFilter) ([]repository.InvoiceHeaderView, error) {
	var out []repository.InvoiceHeaderView
	for _, inv := range r.s.invoices {
		out = append(out, repository.InvoiceHeaderView{Invoice: *inv, EmployeeName: "Asha Rao"})
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}

type fakeTxRunner struct{ s *fakeStore }

func (t *fakeTxRunner) RunSale(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	snap := t.s.snapshot()
	if err := fn(&fakeProductRepo{t.s}, &fakeInvoiceRepo{t.s}); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func product(code, name string, price string, stock int64) *entity.Product {
	return &entity.Product{
		Code: code, Name: name, Price: dec(price),
		Stock: stock, Active: true, LastUpdated: time.Now(),
	}
}

func saleRequest(items ...dto.SaleItemRequest) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		EmployeeID: 1,
		Discount:   dec("50.00"),
		TaxRate:    dec("5"),
		Items:      items,
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreateSale_DescuentaStockYPersisteTodo(t *testing.T) {
	store := newFakeStore(
		product("PC001", "Teclado mecánico", "230.00", 10),
		product("PC002", "Mouse inalámbrico", "185.00", 8),
	)
	uc := NewCreateSaleUseCase(&fakeTxRunner{store})

	resp, err := uc.CreateSale(context.Background(), saleRequest(
		dto.SaleItemRequest{ProductCode: "PC001", Quantity: 3, SellingPrice: dec("230.00")},
		dto.SaleItemRequest{ProductCode: "PC002", Quantity: 2, SellingPrice: dec("185.00")},
	))
	require.NoError(t, err)

	// Totales del escenario de referencia
	assert.True(t, dec("1060.00").Equal(resp.SubTotal))
	assert.True(t, dec("50.50").Equal(resp.Tax))
	assert.True(t, dec("1060.50").Equal(resp.FinalAmount))

	// Exactamente una factura con N líneas y stock descontado
	require.Len(t, store.invoices, 1)
	assert.Equal(t, int64(1), resp.InvoiceNum)
	assert.Len(t, store.details, 2)
	assert.Equal(t, int64(7), store.products["PC001"].Stock)
	assert.Equal(t, int64(6), store.products["PC002"].Stock)
	assert.Equal(t, "Teclado mecánico", resp.Items[0].ProductName)
	assert.Equal(t, walkInCustomerName, resp.CustomerName)
}

// Una venta con cliente registrado responde con su nombre, no con el
// default de mostrador.
func TestCreateSale_ClienteRegistradoConservaSuNombre(t *testing.T) {
	store := newFakeStore(product("PC001", "Teclado mecánico", "230.00", 10))
	uc := NewCreateSaleUseCase(&fakeTxRunner{store})

	customerID := int64(5)
	in := saleRequest(dto.SaleItemRequest{ProductCode: "PC001", Quantity: 1, SellingPrice: dec("230.00")})
	in.CustomerID = &customerID

	resp, err := uc.CreateSale(context.Background(), in)
	require.NoError(t, err)

	require.NotNil(t, resp.CustomerID)
	assert.Equal(t, customerID, *resp.CustomerID)
	assert.Equal(t, "Priya Nair", resp.CustomerName)
	assert.Equal(t, "Asha Rao", resp.EmployeeName)
}

func TestCreateSale_StockInsuficienteNoDejaEstadoParcial(t *testing.T) {
	store := newFakeStore(
		product("PC001", "Teclado", "230.00", 10),
		product("PC002", "Mouse", "185.00", 1), // menos que lo pedido
	)
	uc := NewCreateSaleUseCase(&fakeTxRunner{store})

	_, err := uc.CreateSale(context.Background(), saleRequest(
		dto.SaleItemRequest{ProductCode: "PC001", Quantity: 3, SellingPrice: dec("230.00")},
		dto.SaleItemRequest{ProductCode: "PC002", Quantity: 2, SellingPrice: dec("185.00")},
	))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var stockErr *domain.StockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "PC002", stockErr.ProductCode)
	assert.Equal(t, int64(1), stockErr.Available)
	assert.Equal(t, int64(2), stockErr.Requested)

	// Todo-o-nada: cero facturas, cero líneas, ningún stock tocado
	assert.Empty(t, store.invoices)
	assert.Empty(t, store.details)
	assert.Equal(t, int64(10), store.products["PC001"].Stock)
	assert.Equal(t, int64(1), store.products["PC002"].Stock)
}

func TestCreateSale_ProductoInexistente(t *testing.T) {
	store := newFakeStore(product("PC001", "Teclado", "230.00", 10))
	uc := NewCreateSaleUseCase(&fakeTxRunner{store})

	_, err := uc.CreateSale(context.Background(), saleRequest(
		dto.SaleItemRequest{ProductCode: "NOPE", Quantity: 1, SellingPrice: dec("10.00")},
	))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Empty(t, store.invoices)
}

// Líneas repetidas del mismo producto: el stock se verifica y descuenta
// sobre la suma, pero cada línea se persiste por separado.
func TestCreateSale_LineasDuplicadasSeConsolidan(t *testing.T) {
	store := newFakeStore(product("PC001", "Teclado", "10.00", 10))
	uc := NewCreateSaleUseCase(&fakeTxRunner{store})

	resp, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		EmployeeID: 1,
		TaxRate:    decimal.Zero,
		Items: []dto.SaleItemRequest{
			{ProductCode: "PC001", Quantity: 2, SellingPrice: dec("10.00")},
			{ProductCode: "PC001", Quantity: 3, SellingPrice: dec("10.00")},
		},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
	assert.Len(t, store.details, 2)
	assert.Equal(t, int64(5), store.products["PC001"].Stock)
}

func TestCreateSale_LineasDuplicadasSuperanStock(t *testing.T) {
	store := newFakeStore(product("PC001", "Teclado", "10.00", 5))
	uc := NewCreateSaleUseCase(&fakeTxRunner{store})

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		EmployeeID: 1,
		Items: []dto.SaleItemRequest{
			{ProductCode: "PC001", Quantity: 3, SellingPrice: dec("10.00")},
			{ProductCode: "PC001", Quantity: 3, SellingPrice: dec("10.00")},
		},
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, int64(5), store.products["PC001"].Stock)
}

// Los bloqueos se adquieren en orden ascendente de código sin importar el
// orden del carrito.
func TestCreateSale_BloqueaEnOrdenEstable(t *testing.T) {
	store := newFakeStore(
		product("PC003", "C", "1.00", 10),
		product("PC001", "A", "1.00", 10),
		product("PC002", "B", "1.00", 10),
	)
	uc := NewCreateSaleUseCase(&fakeTxRunner{store})

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		EmployeeID: 1,
		Items: []dto.SaleItemRequest{
			{ProductCode: "PC003", Quantity: 1, SellingPrice: dec("1.00")},
			{ProductCode: "PC001", Quantity: 1, SellingPrice: dec("1.00")},
			{ProductCode: "PC002", Quantity: 1, SellingPrice: dec("1.00")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"PC001", "PC002", "PC003"}, store.lockOrder)
}

func TestCreateSale_FalloDeStorageRevierteTodo(t *testing.T) {
	store := newFakeStore(product("PC001", "Teclado", "10.00", 10))
	store.failCreateDetail = true
	uc := NewCreateSaleUseCase(&fakeTxRunner{store})

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		EmployeeID: 1,
		Items: []dto.SaleItemRequest{
			{ProductCode: "PC001", Quantity: 1, SellingPrice: dec("10.00")},
		},
	})
	require.Error(t, err)
	assert.Empty(t, store.invoices)
	assert.Empty(t, store.details)
	assert.Equal(t, int64(10), store.products["PC001"].Stock)
}

func TestCreateSale_CarritoInvalido(t *testing.T) {
	store := newFakeStore(product("PC001", "Teclado", "10.00", 10))
	uc := NewCreateSaleUseCase(&fakeTxRunner{store})

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{EmployeeID: 1})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductCode: "PC001", Quantity: 1, SellingPrice: dec("10.00")}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
