package payments_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/campuspay/backend/infra/provider/mockpayment"
	"github.com/campuspay/backend/pkg/app"
	"github.com/campuspay/backend/pkg/dto"
	"github.com/campuspay/backend/pkg/testutils"
	"github.com/campuspay/backend/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*fiber.App, *testutils.MemoryUoW) {
	t.Helper()
	uow := testutils.NewMemoryUoW()
	uow.SeedStudent(dto.StudentCreate{StudentID: "STU001", Name: "Aarav Sharma", Balance: 100000})
	uow.SeedVendor(dto.VendorCreate{VendorID: "VEN001", Name: "Campus Canteen", UpiID: "canteen@upi"})

	a := app.New(&app.Deps{
		Uow:     uow,
		Gateway: mockpayment.New("test_secret"),
		Logger:  testutils.DiscardLogger(),
	}, testutils.TestConfig())
	return testutils.NewTestApp(a), uow
}

func TestPurchase_Success(t *testing.T) {
	fiberApp, _ := setup(t)

	resp := testutils.MakeRequest(t, fiberApp, "POST", "/payments/purchase",
		`{"student_id":"STU001","vendor_id":"VEN001","amount":150,"description":"Lunch"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body common.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data := body.Data.(map[string]any)
	assert.Equal(t, float64(150), data["amount"])
	assert.Equal(t, float64(850), data["new_student_balance"])
	assert.Equal(t, float64(150), data["new_vendor_balance"])
	assert.NotEmpty(t, data["transaction_id"])
}

func TestPurchase_InsufficientBalance(t *testing.T) {
	fiberApp, uow := setup(t)

	resp := testutils.MakeRequest(t, fiberApp, "POST", "/payments/purchase",
		`{"student_id":"STU001","vendor_id":"VEN001","amount":5000}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var pd common.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Contains(t, pd.Detail, "insufficient balance")

	// Balance unchanged.
	student, err := uow.Students().Get(context.Background(), "STU001")
	require.NoError(t, err)
	assert.Equal(t, int64(100000), student.Balance)
}

func TestPurchase_StudentNotFound(t *testing.T) {
	fiberApp, _ := setup(t)

	resp := testutils.MakeRequest(t, fiberApp, "POST", "/payments/purchase",
		`{"student_id":"STU999","vendor_id":"VEN001","amount":10}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPurchase_VendorNotFound(t *testing.T) {
	fiberApp, _ := setup(t)

	resp := testutils.MakeRequest(t, fiberApp, "POST", "/payments/purchase",
		`{"student_id":"STU001","vendor_id":"VEN999","amount":10}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPurchase_ValidationFailures(t *testing.T) {
	fiberApp, _ := setup(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing student", `{"vendor_id":"VEN001","amount":10}`},
		{"missing vendor", `{"student_id":"STU001","amount":10}`},
		{"zero amount", `{"student_id":"STU001","vendor_id":"VEN001","amount":0}`},
		{"negative amount", `{"student_id":"STU001","vendor_id":"VEN001","amount":-5}`},
		{"malformed json", `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := testutils.MakeRequest(t, fiberApp, "POST", "/payments/purchase", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestPurchase_SubPaiseAmountRejected(t *testing.T) {
	fiberApp, _ := setup(t)

	resp := testutils.MakeRequest(t, fiberApp, "POST", "/payments/purchase",
		`{"student_id":"STU001","vendor_id":"VEN001","amount":10.005}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
