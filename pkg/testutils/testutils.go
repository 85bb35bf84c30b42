// Package testutils provides in-memory repository fakes and a test app
// builder shared by the service and handler tests. The fakes honor the
// same contracts as the gorm implementations, minus real transaction
// rollback.
package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/campuspay/backend/pkg/app"
	"github.com/campuspay/backend/pkg/config"
	"github.com/campuspay/backend/pkg/domain"
	"github.com/campuspay/backend/pkg/dto"
	"github.com/campuspay/backend/pkg/repository"
	"github.com/campuspay/backend/webapi/common"
	paymentsweb "github.com/campuspay/backend/webapi/payments"
	rechargeweb "github.com/campuspay/backend/webapi/recharge"
	studentweb "github.com/campuspay/backend/webapi/student"
	vendorweb "github.com/campuspay/backend/webapi/vendor"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
)

// MemoryUoW is an in-memory UnitOfWork. All repositories share one store
// guarded by a single mutex, so the conditional-update contracts behave
// like their SQL counterparts under concurrent tests.
type MemoryUoW struct {
	mu           sync.Mutex
	students     map[string]*dto.StudentRead
	vendors      map[string]*dto.VendorRead
	transactions map[uuid.UUID]*dto.TransactionRead
	orderIndex   map[string]uuid.UUID
}

// NewMemoryUoW creates an empty in-memory store.
func NewMemoryUoW() *MemoryUoW {
	return &MemoryUoW{
		students:     make(map[string]*dto.StudentRead),
		vendors:      make(map[string]*dto.VendorRead),
		transactions: make(map[uuid.UUID]*dto.TransactionRead),
		orderIndex:   make(map[string]uuid.UUID),
	}
}

// Do runs fn against the same store. Rollback is not simulated; tests
// that need rollback semantics assert on the error paths before any
// mutation happens.
func (m *MemoryUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(m)
}

// Students implements repository.UnitOfWork.
func (m *MemoryUoW) Students() repository.StudentRepository { return (*memStudents)(m) }

// Vendors implements repository.UnitOfWork.
func (m *MemoryUoW) Vendors() repository.VendorRepository { return (*memVendors)(m) }

// Transactions implements repository.UnitOfWork.
func (m *MemoryUoW) Transactions() repository.TransactionRepository { return (*memTransactions)(m) }

// SeedStudent inserts a student directly into the store.
func (m *MemoryUoW) SeedStudent(s dto.StudentCreate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.students[s.StudentID] = &dto.StudentRead{
		StudentID: s.StudentID,
		Name:      s.Name,
		Balance:   s.Balance,
		ParentID:  s.ParentID,
		Class:     s.Class,
		Section:   s.Section,
		CreatedAt: time.Now(),
	}
}

// SeedVendor inserts a vendor directly into the store.
func (m *MemoryUoW) SeedVendor(v dto.VendorCreate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vendors[v.VendorID] = &dto.VendorRead{
		VendorID:  v.VendorID,
		Name:      v.Name,
		UpiID:     v.UpiID,
		StoreType: v.StoreType,
		Balance:   v.Balance,
		CreatedAt: time.Now(),
	}
}

type memStudents MemoryUoW

func (m *memStudents) Get(ctx context.Context, studentID string) (*dto.StudentRead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[studentID]
	if !ok {
		return nil, domain.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStudents) Create(ctx context.Context, create dto.StudentCreate) error {
	(*MemoryUoW)(m).SeedStudent(create)
	return nil
}

func (m *memStudents) DebitIfSufficient(ctx context.Context, studentID string, amount int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[studentID]
	if !ok {
		return false, domain.ErrStudentNotFound
	}
	if s.Balance < amount {
		return false, nil
	}
	s.Balance -= amount
	return true, nil
}

func (m *memStudents) Credit(ctx context.Context, studentID string, amount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[studentID]
	if !ok {
		return domain.ErrStudentNotFound
	}
	s.Balance += amount
	return nil
}

type memVendors MemoryUoW

func (m *memVendors) Get(ctx context.Context, vendorID string) (*dto.VendorRead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vendors[vendorID]
	if !ok {
		return nil, domain.ErrVendorNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *memVendors) Create(ctx context.Context, create dto.VendorCreate) error {
	(*MemoryUoW)(m).SeedVendor(create)
	return nil
}

func (m *memVendors) Credit(ctx context.Context, vendorID string, amount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vendors[vendorID]
	if !ok {
		return domain.ErrVendorNotFound
	}
	v.Balance += amount
	return nil
}

type memTransactions MemoryUoW

func (m *memTransactions) Create(ctx context.Context, create dto.TransactionCreate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &dto.TransactionRead{
		ID:              create.ID,
		StudentID:       create.StudentID,
		VendorID:        create.VendorID,
		Amount:          create.Amount,
		Type:            create.Type,
		Description:     create.Description,
		Status:          create.Status,
		ExternalOrderID: create.ExternalOrderID,
		StudentBalance:  create.StudentBalance,
		VendorBalance:   create.VendorBalance,
		CreatedAt:       time.Now(),
	}
	m.transactions[t.ID] = t
	if t.ExternalOrderID != "" {
		m.orderIndex[t.ExternalOrderID] = t.ID
	}
	return nil
}

func (m *memTransactions) Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTransactions) GetByOrderID(ctx context.Context, orderID string) (*dto.TransactionRead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.orderIndex[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *m.transactions[id]
	return &cp, nil
}

func (m *memTransactions) MarkCompleted(ctx context.Context, id uuid.UUID, settle dto.TransactionSettle) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	if !ok {
		return false, nil
	}
	if t.Status != string(domain.StatusPending) {
		return false, nil
	}
	t.Status = string(domain.StatusCompleted)
	t.PaymentID = settle.PaymentID
	completedAt := settle.CompletedAt
	t.CompletedAt = &completedAt
	if settle.StudentBalance != nil {
		t.StudentBalance = settle.StudentBalance
	}
	if settle.VendorBalance != nil {
		t.VendorBalance = settle.VendorBalance
	}
	return true, nil
}

func (m *memTransactions) ListByStudent(ctx context.Context, studentID string) ([]*dto.TransactionRead, error) {
	return m.list(func(t *dto.TransactionRead) bool { return t.StudentID == studentID })
}

func (m *memTransactions) ListByVendor(ctx context.Context, vendorID string) ([]*dto.TransactionRead, error) {
	return m.list(func(t *dto.TransactionRead) bool { return t.VendorID == vendorID })
}

func (m *memTransactions) list(match func(*dto.TransactionRead) bool) ([]*dto.TransactionRead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*dto.TransactionRead
	for _, t := range m.transactions {
		if match(t) {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// DiscardLogger returns a logger that swallows everything, keeping test
// output readable.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestConfig returns a config with the local defaults used by handler
// tests.
func TestConfig() *config.App {
	return &config.App{
		Env:      "test",
		Server:   &config.Server{Host: "localhost", Port: 8000},
		Razorpay: &config.Razorpay{KeyID: "rzp_test_key"},
	}
}

// NewTestApp builds a Fiber app with the full route table but without
// rate limiting or metrics, wired to the provided services.
func NewTestApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Use(recover.New())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("CampusPay API is running! 🚀")
	})

	studentweb.Routes(fiberApp, a.ReportingService)
	vendorweb.Routes(fiberApp, a.ReportingService)
	paymentsweb.Routes(fiberApp, a.TransferService)
	rechargeweb.Routes(fiberApp, a.RechargeService, a.Config.Razorpay)
	return fiberApp
}

// MakeRequest is a helper for making HTTP requests in tests.
func MakeRequest(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, 10000)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}
