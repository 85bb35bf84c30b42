package student_test

import (
	"encoding/json"
	"net/http"
	"strings"
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

func setup(t *testing.T) *fiber.App {
	t.Helper()
	uow := testutils.NewMemoryUoW()
	uow.SeedStudent(dto.StudentCreate{
		StudentID: "STU001", Name: "Aarav Sharma", Balance: 100000,
		ParentID: "PAR001", Class: "5", Section: "A",
	})
	uow.SeedVendor(dto.VendorCreate{VendorID: "VEN001", Name: "Campus Canteen", UpiID: "canteen@upi"})

	a := app.New(&app.Deps{
		Uow:     uow,
		Gateway: mockpayment.New("test_secret"),
		Logger:  testutils.DiscardLogger(),
	}, testutils.TestConfig())
	return testutils.NewTestApp(a)
}

func TestGetStudent(t *testing.T) {
	fiberApp := setup(t)

	resp := testutils.MakeRequest(t, fiberApp, "GET", "/students/STU001", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body common.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data := body.Data.(map[string]any)
	assert.Equal(t, "STU001", data["student_id"])
	assert.Equal(t, "Aarav Sharma", data["name"])
	assert.Equal(t, float64(1000), data["balance"]) // rupees, not paise
	assert.Equal(t, "5", data["class"])
}

func TestGetStudent_NotFound(t *testing.T) {
	fiberApp := setup(t)

	resp := testutils.MakeRequest(t, fiberApp, "GET", "/students/STU999", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var pd common.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Equal(t, http.StatusNotFound, pd.Status)
}

func TestGetStudentQR(t *testing.T) {
	fiberApp := setup(t)

	resp := testutils.MakeRequest(t, fiberApp, "GET", "/students/STU001/qr", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body common.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data := body.Data.(map[string]any)
	assert.True(t, strings.HasPrefix(data["qr_code"].(string), "data:image/png;base64,"))
	assert.Equal(t, "Aarav Sharma", data["student_name"])
	assert.Equal(t, float64(1000), data["balance"])
}

func TestGetTransactions_NewestFirst(t *testing.T) {
	fiberApp := setup(t)

	for _, desc := range []string{"first", "second", "third"} {
		body := `{"student_id":"STU001","vendor_id":"VEN001","amount":10,"description":"` + desc + `"}`
		resp := testutils.MakeRequest(t, fiberApp, "POST", "/payments/purchase", body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := testutils.MakeRequest(t, fiberApp, "GET", "/students/STU001/transactions", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body common.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	items := body.Data.([]any)
	require.Len(t, items, 3)
	assert.Equal(t, "third", items[0].(map[string]any)["description"])
	assert.Equal(t, "first", items[2].(map[string]any)["description"])
}

func TestGetTransactions_UnknownStudent(t *testing.T) {
	fiberApp := setup(t)

	resp := testutils.MakeRequest(t, fiberApp, "GET", "/students/STU999/transactions", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
