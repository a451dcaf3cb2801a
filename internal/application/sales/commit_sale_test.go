package sales

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
	"github.com/tu-usuario/farmacia-pro/pkg/logger"
)

// ── Fakes en memoria ──────────────────────────────────────────────────────────

// memState estado completo de la "base de datos" en memoria. El fake de
// TxRunner trabaja sobre un clon y solo lo publica si fn termina sin error,
// reproduciendo la semántica todo-o-nada de la transacción real.
type memState struct {
	medicines map[string]*entity.Medicine
	sales     map[string]*entity.Sale
	items     []*entity.SaleItem
	counters  map[string]int64
}

func newMemState() *memState {
	return &memState{
		medicines: make(map[string]*entity.Medicine),
		sales:     make(map[string]*entity.Sale),
		counters:  make(map[string]int64),
	}
}

func (st *memState) clone() *memState {
	c := newMemState()
	for id, m := range st.medicines {
		copied := *m
		c.medicines[id] = &copied
	}
	for id, s := range st.sales {
		copied := *s
		c.sales[id] = &copied
	}
	for _, it := range st.items {
		copied := *it
		c.items = append(c.items, &copied)
	}
	for k, v := range st.counters {
		c.counters[k] = v
	}
	return c
}

type fakeMedicineRepo struct {
	st *memState
}

func (r *fakeMedicineRepo) Create(med *entity.Medicine) error {
	copied := *med
	r.st.medicines[med.ID] = &copied
	return nil
}

func (r *fakeMedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	m, ok := r.st.medicines[id]
	if !ok {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMedicineRepo) ListByUser(userID string, limit, offset int) ([]*entity.Medicine, error) {
	var out []*entity.Medicine
	for _, m := range r.st.medicines {
		if m.UserID == userID {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeMedicineRepo) Update(med *entity.Medicine) error {
	copied := *med
	r.st.medicines[med.ID] = &copied
	return nil
}

func (r *fakeMedicineRepo) Delete(id string) error {
	delete(r.st.medicines, id)
	return nil
}

func (r *fakeMedicineRepo) GetForUpdate(id string) (*entity.Medicine, error) {
	return r.GetByID(id)
}

func (r *fakeMedicineRepo) DecrementStock(id string, qty int64) error {
	m, ok := r.st.medicines[id]
	if !ok || m.QuantityInStock < qty {
		return domain.ErrStockRaceLost
	}
	m.QuantityInStock -= qty
	return nil
}

type fakeSaleRepo struct {
	st *memState
	// failOnItem fuerza un fallo al persistir la línea N (1-based); 0 desactiva.
	failOnItem int
	itemCalls  int
}

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	for _, s := range r.st.sales {
		if s.UserID == sale.UserID && s.InvoiceNumber == sale.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	copied := *sale
	r.st.sales[sale.ID] = &copied
	return nil
}

func (r *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	r.itemCalls++
	if r.failOnItem > 0 && r.itemCalls == r.failOnItem {
		return fmt.Errorf("caída simulada de la base de datos")
	}
	copied := *item
	r.st.items = append(r.st.items, &copied)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.st.sales[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSaleRepo) ListByUser(userID string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.st.sales {
		if s.UserID == userID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range r.st.items {
		if it.SaleID == saleID {
			copied := *it
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) NextInvoiceSeq(userID string) (int64, error) {
	r.st.counters[userID]++
	return r.st.counters[userID], nil
}

// fakeTxRunner ejecuta fn sobre un clon del estado y solo publica el clon si
// fn termina sin error.
type fakeTxRunner struct {
	st         *memState
	failOnItem int
}

func (r *fakeTxRunner) RunSale(_ context.Context, fn func(
	medRepo repository.MedicineRepository,
	saleRepo repository.SaleRepository,
) error) error {
	working := r.st.clone()
	saleRepo := &fakeSaleRepo{st: working, failOnItem: r.failOnItem}
	if err := fn(&fakeMedicineRepo{st: working}, saleRepo); err != nil {
		return err
	}
	*r.st = *working
	return nil
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) { return r.customers[id], nil }
func (r *fakeCustomerRepo) ListByUser(string, int, int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Update(*entity.Customer) error      { return nil }
func (r *fakeCustomerRepo) Delete(string) error                { return nil }
func (r *fakeCustomerRepo) CountByUser(string) (int, error)    { return len(r.customers), nil }

// ── Helpers ───────────────────────────────────────────────────────────────────

const saleTestUser = "user-1"

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func saleTestMedicine(id, name string, stock int64, unitPrice string) *entity.Medicine {
	return &entity.Medicine{
		ID:              id,
		UserID:          saleTestUser,
		Name:            name,
		GenericName:     name,
		Manufacturer:    "Lab Norte",
		QuantityInStock: stock,
		ReorderLevel:    2,
		UnitPrice:       price(unitPrice),
		ExpiryDate:      time.Now().AddDate(1, 0, 0),
	}
}

type commitFixture struct {
	st       *memState
	runner   *fakeTxRunner
	sessions *SessionStore
	uc       *CommitSaleUseCase
}

func newCommitFixture(t *testing.T) *commitFixture {
	t.Helper()
	st := newMemState()
	runner := &fakeTxRunner{st: st}
	sessions := NewSessionStore()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := NewCommitSaleUseCase(runner, sessions, &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}, log)
	return &commitFixture{st: st, runner: runner, sessions: sessions, uc: uc}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCommit_VentaExitosa(t *testing.T) {
	f := newCommitFixture(t)
	medA := saleTestMedicine("med-a", "Amoxicilina 500mg", 10, "2.00")
	medB := saleTestMedicine("med-b", "Ibuprofeno 400mg", 3, "5.00")
	f.st.medicines[medA.ID] = medA
	f.st.medicines[medB.ID] = medB

	require.NoError(t, f.sessions.Add(saleTestUser, medA, 4))
	require.NoError(t, f.sessions.Add(saleTestUser, medB, 3))

	out, err := f.uc.Commit(context.Background(), saleTestUser, dto.CommitSaleRequest{})
	require.NoError(t, err)

	assert.True(t, out.TotalAmount.Equal(price("23.00")), "total = 4×2.00 + 3×5.00")
	assert.Equal(t, entity.PaymentMethodCash, out.PaymentMethod, "método por defecto")
	assert.Equal(t, entity.PaymentStatusCompleted, out.PaymentStatus)
	assert.Len(t, out.Items, 2)

	expected := "INV-" + time.Now().Format("20060102") + "-000001"
	assert.Equal(t, expected, out.InvoiceNumber)

	assert.Equal(t, int64(6), f.st.medicines["med-a"].QuantityInStock)
	assert.Equal(t, int64(0), f.st.medicines["med-b"].QuantityInStock)
	assert.Len(t, f.st.sales, 1)
	assert.Len(t, f.st.items, 2)

	lines, _ := f.sessions.Snapshot(saleTestUser)
	assert.Empty(t, lines, "el carrito se descarta tras el commit")
}

func TestCommit_SinUsuario(t *testing.T) {
	f := newCommitFixture(t)
	_, err := f.uc.Commit(context.Background(), "", dto.CommitSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCommit_CarritoVacio(t *testing.T) {
	f := newCommitFixture(t)
	_, err := f.uc.Commit(context.Background(), saleTestUser, dto.CommitSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCommit_MetodoPagoInvalido(t *testing.T) {
	f := newCommitFixture(t)
	med := saleTestMedicine("med-a", "Amoxicilina 500mg", 10, "5.00")
	f.st.medicines[med.ID] = med
	require.NoError(t, f.sessions.Add(saleTestUser, med, 1))

	_, err := f.uc.Commit(context.Background(), saleTestUser, dto.CommitSaleRequest{PaymentMethod: "bitcoin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCommit_ClienteAjeno(t *testing.T) {
	f := newCommitFixture(t)
	med := saleTestMedicine("med-a", "Amoxicilina 500mg", 10, "5.00")
	f.st.medicines[med.ID] = med
	require.NoError(t, f.sessions.Add(saleTestUser, med, 1))

	customers := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		"cust-x": {ID: "cust-x", UserID: "otra-cuenta", Name: "Ajeno"},
	}}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := NewCommitSaleUseCase(f.runner, f.sessions, customers, log)

	_, err := uc.Commit(context.Background(), saleTestUser, dto.CommitSaleRequest{CustomerID: "cust-x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCommit_FalloIntermedioRevierteTodo(t *testing.T) {
	f := newCommitFixture(t)
	medA := saleTestMedicine("med-a", "Amoxicilina 500mg", 10, "2.00")
	medB := saleTestMedicine("med-b", "Ibuprofeno 400mg", 3, "5.00")
	f.st.medicines[medA.ID] = medA
	f.st.medicines[medB.ID] = medB

	require.NoError(t, f.sessions.Add(saleTestUser, medA, 4))
	require.NoError(t, f.sessions.Add(saleTestUser, medB, 3))

	before := f.st.clone()
	f.runner.failOnItem = 2 // cae al persistir la segunda línea

	_, err := f.uc.Commit(context.Background(), saleTestUser, dto.CommitSaleRequest{})
	require.Error(t, err)

	// Estado byte a byte como antes del intento: ni venta, ni líneas, ni
	// decrementos parciales, ni consecutivo consumido.
	assert.Equal(t, before.medicines, f.st.medicines)
	assert.Equal(t, before.sales, f.st.sales)
	assert.Equal(t, before.items, f.st.items)
	assert.Equal(t, before.counters, f.st.counters)

	lines, total := f.sessions.Snapshot(saleTestUser)
	assert.Len(t, lines, 2, "el carrito queda intacto para reintentar")
	assert.True(t, total.Equal(price("23.00")))
}

func TestCommit_PierdeCarreraDeStock(t *testing.T) {
	f := newCommitFixture(t)
	med := saleTestMedicine("med-a", "Amoxicilina 500mg", 1, "5.00")
	f.st.medicines[med.ID] = med

	// Carrito armado cuando había 1 unidad.
	require.NoError(t, f.sessions.Add(saleTestUser, med, 1))

	// Otra venta se lleva la última unidad antes de nuestro commit.
	f.st.medicines["med-a"].QuantityInStock = 0

	_, err := f.uc.Commit(context.Background(), saleTestUser, dto.CommitSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrStockRaceLost)

	assert.Equal(t, int64(0), f.st.medicines["med-a"].QuantityInStock, "el stock no baja de cero")
	assert.Empty(t, f.st.sales, "no queda venta persistida")
	assert.Empty(t, f.st.items)
	assert.Zero(t, f.st.counters[saleTestUser], "el consecutivo se revierte con la venta")

	lines, _ := f.sessions.Snapshot(saleTestUser)
	assert.Len(t, lines, 1, "el carrito sobrevive al fallo")
}

func TestCommit_MedicamentoBorradoPierdeCarrera(t *testing.T) {
	f := newCommitFixture(t)
	med := saleTestMedicine("med-a", "Amoxicilina 500mg", 5, "5.00")
	f.st.medicines[med.ID] = med
	require.NoError(t, f.sessions.Add(saleTestUser, med, 1))

	delete(f.st.medicines, "med-a")

	_, err := f.uc.Commit(context.Background(), saleTestUser, dto.CommitSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrStockRaceLost)
	assert.Empty(t, f.st.sales)
}

func TestCommit_ConsecutivoPorCuenta(t *testing.T) {
	f := newCommitFixture(t)
	med := saleTestMedicine("med-a", "Amoxicilina 500mg", 10, "5.00")
	f.st.medicines[med.ID] = med

	require.NoError(t, f.sessions.Add(saleTestUser, med, 1))
	first, err := f.uc.Commit(context.Background(), saleTestUser, dto.CommitSaleRequest{PaymentMethod: entity.PaymentMethodCard})
	require.NoError(t, err)

	require.NoError(t, f.sessions.Add(saleTestUser, f.st.medicines["med-a"], 2))
	second, err := f.uc.Commit(context.Background(), saleTestUser, dto.CommitSaleRequest{})
	require.NoError(t, err)

	date := time.Now().Format("20060102")
	assert.Equal(t, "INV-"+date+"-000001", first.InvoiceNumber)
	assert.Equal(t, "INV-"+date+"-000002", second.InvoiceNumber)
	assert.NotEqual(t, first.InvoiceNumber, second.InvoiceNumber)
}
