// Package payments exposes the in-person purchase endpoint: the vendor
// scans the student card and submits the charge.
package payments

import (
	"github.com/campuspay/backend/pkg/currency"
	"github.com/campuspay/backend/pkg/domain/money"
	"github.com/campuspay/backend/pkg/service/transfer"
	"github.com/campuspay/backend/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// PurchaseRequest is the charge submitted by a vendor terminal. Amount is
// in major units (rupees).
type PurchaseRequest struct {
	StudentID   string  `json:"student_id" validate:"required"`
	VendorID    string  `json:"vendor_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description"`
}

// PurchaseResponse reports the settled charge and both post-transfer
// balances.
type PurchaseResponse struct {
	TransactionID     string  `json:"transaction_id"`
	Amount            float64 `json:"amount"`
	NewStudentBalance float64 `json:"new_student_balance"`
	NewVendorBalance  float64 `json:"new_vendor_balance"`
}

// Routes registers the purchase endpoint.
//
// Routes:
//   - POST /payments/purchase : Debit the student, credit the vendor.
func Routes(app *fiber.App, transferSvc *transfer.Service) {
	app.Post("/payments/purchase", Purchase(transferSvc))
}

// Purchase returns a Fiber handler executing a card purchase. The whole
// transfer settles atomically; a failure anywhere leaves both balances
// untouched.
func Purchase(transferSvc *transfer.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[PurchaseRequest](c)
		if input == nil {
			return err // error response already written
		}

		amount, err := money.New(input.Amount, currency.INR)
		if err != nil {
			log.Errorf("Invalid purchase amount: %v", err)
			return common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
		}

		tx, err := transferSvc.Purchase(c.Context(), input.StudentID, input.VendorID, amount, input.Description)
		if err != nil {
			log.Errorf("Failed to process purchase: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to process purchase", err)
		}

		return common.SuccessResponseJSON(c, fiber.StatusOK, "Purchase successful", PurchaseResponse{
			TransactionID:     tx.ID.String(),
			Amount:            common.MinorToMajor(tx.Amount),
			NewStudentBalance: common.MinorToMajor(*tx.StudentBalance),
			NewVendorBalance:  common.MinorToMajor(*tx.VendorBalance),
		})
	}
}
