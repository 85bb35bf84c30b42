package reporting_test

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/campuspay/backend/pkg/domain"
	"github.com/campuspay/backend/pkg/dto"
	"github.com/campuspay/backend/pkg/service/reporting"
	"github.com/campuspay/backend/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*reporting.Service, *testutils.MemoryUoW) {
	t.Helper()
	uow := testutils.NewMemoryUoW()
	uow.SeedStudent(dto.StudentCreate{StudentID: "STU001", Name: "Aarav Sharma", Balance: 100000})
	uow.SeedVendor(dto.VendorCreate{VendorID: "VEN001", Name: "Campus Canteen", UpiID: "canteen@upi"})
	return reporting.New(uow, testutils.DiscardLogger()), uow
}

func TestGetStudentQR_PayloadCarriesCardID(t *testing.T) {
	svc, _ := newService(t)

	qr, err := svc.GetStudentQR(context.Background(), "STU001")
	require.NoError(t, err)

	assert.Equal(t, `{"student_id":"STU001"}`, qr.Payload)
	assert.Equal(t, "Aarav Sharma", qr.StudentName)
	assert.Equal(t, int64(100000), qr.Balance)

	// The data URI must decode back to a PNG.
	require.True(t, strings.HasPrefix(qr.QRCode, "data:image/png;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(qr.QRCode, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), raw[:4])
}

func TestGetStudentQR_NotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.GetStudentQR(context.Background(), "STU999")
	assert.ErrorIs(t, err, domain.ErrStudentNotFound)
}

func TestGetVendorQR_EncodesUpiIntent(t *testing.T) {
	svc, _ := newService(t)

	qr, err := svc.GetVendorQR(context.Background(), "VEN001")
	require.NoError(t, err)
	assert.Equal(t, "upi://pay?pa=canteen@upi&pn=Vendor&mc=0000&mode=02&purpose=00", qr.Payload)
	assert.True(t, strings.HasPrefix(qr.QRCode, "data:image/png;base64,"))
}

func TestTransactions_RequireExistingParty(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.StudentTransactions(context.Background(), "STU999")
	assert.ErrorIs(t, err, domain.ErrStudentNotFound)

	_, err = svc.VendorTransactions(context.Background(), "VEN999")
	assert.ErrorIs(t, err, domain.ErrVendorNotFound)
}
