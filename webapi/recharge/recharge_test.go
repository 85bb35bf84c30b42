package recharge_test

import (
	"context"
	"encoding/json"
	"fmt"
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

func setup(t *testing.T) (*fiber.App, *testutils.MemoryUoW, *mockpayment.MockGateway) {
	t.Helper()
	uow := testutils.NewMemoryUoW()
	uow.SeedStudent(dto.StudentCreate{StudentID: "STU001", Name: "Aarav Sharma", Balance: 100000})
	uow.SeedVendor(dto.VendorCreate{VendorID: "VEN001", Name: "Campus Canteen", UpiID: "canteen@upi"})

	gateway := mockpayment.New("test_secret")
	a := app.New(&app.Deps{
		Uow:     uow,
		Gateway: gateway,
		Logger:  testutils.DiscardLogger(),
	}, testutils.TestConfig())
	return testutils.NewTestApp(a), uow, gateway
}

func createOrder(t *testing.T, fiberApp *fiber.App) (orderID string) {
	t.Helper()
	resp := testutils.MakeRequest(t, fiberApp, "POST", "/recharge/orders",
		`{"student_id":"STU001","vendor_id":"VEN001","amount":500}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body common.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data := body.Data.(map[string]any)
	return data["order_id"].(string)
}

func TestCreateOrder_ReturnsCheckoutFields(t *testing.T) {
	fiberApp, _, _ := setup(t)

	resp := testutils.MakeRequest(t, fiberApp, "POST", "/recharge/orders",
		`{"student_id":"STU001","vendor_id":"VEN001","amount":500}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body common.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data := body.Data.(map[string]any)
	assert.NotEmpty(t, data["order_id"])
	assert.Equal(t, float64(50000), data["amount"]) // minor units for the checkout
	assert.Equal(t, "INR", data["currency"])
	assert.Equal(t, "rzp_test_key", data["key_id"])
}

func TestCreateOrder_UnknownStudent(t *testing.T) {
	fiberApp, _, _ := setup(t)

	resp := testutils.MakeRequest(t, fiberApp, "POST", "/recharge/orders",
		`{"student_id":"STU999","vendor_id":"VEN001","amount":500}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateOrder_GatewayDown(t *testing.T) {
	fiberApp, _, gateway := setup(t)
	gateway.FailCreate = true

	resp := testutils.MakeRequest(t, fiberApp, "POST", "/recharge/orders",
		`{"student_id":"STU001","vendor_id":"VEN001","amount":500}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestComplete_CreditsWallet(t *testing.T) {
	fiberApp, uow, gateway := setup(t)
	orderID := createOrder(t, fiberApp)

	sig := gateway.Sign(orderID, "pay_001")
	resp := testutils.MakeRequest(t, fiberApp, "POST", "/recharge/orders/complete",
		fmt.Sprintf(`{"order_id":%q,"razorpay_payment_id":"pay_001","razorpay_signature":%q}`, orderID, sig))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body common.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data := body.Data.(map[string]any)
	assert.Equal(t, float64(1500), data["new_student_balance"])
	assert.Equal(t, float64(500), data["new_vendor_balance"])

	entry, err := uow.Transactions().GetByOrderID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, "completed", entry.Status)
}

func TestComplete_ReplayReportsAlreadyProcessed(t *testing.T) {
	fiberApp, _, gateway := setup(t)
	orderID := createOrder(t, fiberApp)

	sig := gateway.Sign(orderID, "pay_001")
	payload := fmt.Sprintf(`{"order_id":%q,"razorpay_payment_id":"pay_001","razorpay_signature":%q}`, orderID, sig)

	resp := testutils.MakeRequest(t, fiberApp, "POST", "/recharge/orders/complete", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = testutils.MakeRequest(t, fiberApp, "POST", "/recharge/orders/complete", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body common.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data := body.Data.(map[string]any)
	assert.Equal(t, true, data["already_processed"])
	// Credited once, not twice.
	assert.Equal(t, float64(1500), data["new_student_balance"])
}

func TestComplete_ForgedSignature(t *testing.T) {
	fiberApp, uow, _ := setup(t)
	orderID := createOrder(t, fiberApp)

	resp := testutils.MakeRequest(t, fiberApp, "POST", "/recharge/orders/complete",
		fmt.Sprintf(`{"order_id":%q,"razorpay_payment_id":"pay_001","razorpay_signature":"forged"}`, orderID))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	student, err := uow.Students().Get(context.Background(), "STU001")
	require.NoError(t, err)
	assert.Equal(t, int64(100000), student.Balance)
}

func TestComplete_MissingFields(t *testing.T) {
	fiberApp, _, _ := setup(t)

	resp := testutils.MakeRequest(t, fiberApp, "POST", "/recharge/orders/complete",
		`{"order_id":"order_x"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLegacyVendorOrderFlow(t *testing.T) {
	fiberApp, _, gateway := setup(t)

	resp := testutils.MakeRequest(t, fiberApp, "POST", "/orders",
		`{"vendor_id":"VEN001","amount":250}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body common.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	orderID := body.Data.(map[string]any)["order_id"].(string)

	sig := gateway.Sign(orderID, "pay_legacy")
	resp = testutils.MakeRequest(t, fiberApp, "POST", "/orders/verify",
		fmt.Sprintf(`{"order_id":%q,"razorpay_payment_id":"pay_legacy","razorpay_signature":%q}`, orderID, sig))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data := body.Data.(map[string]any)
	assert.Equal(t, float64(250), data["new_vendor_balance"])
	_, hasStudent := data["new_student_balance"]
	assert.False(t, hasStudent)
}
