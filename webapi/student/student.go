// Package student exposes the student read endpoints: profile, card QR
// and transaction history.
package student

import (
	"github.com/campuspay/backend/pkg/dto"
	"github.com/campuspay/backend/pkg/service/reporting"
	"github.com/campuspay/backend/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// StudentResponse is the JSON projection of a student. Balance is in
// major units (rupees).
type StudentResponse struct {
	StudentID string  `json:"student_id"`
	Name      string  `json:"name"`
	Balance   float64 `json:"balance"`
	ParentID  string  `json:"parent_id,omitempty"`
	Class     string  `json:"class,omitempty"`
	Section   string  `json:"section,omitempty"`
}

// QRResponse carries the student card QR image plus the fields shown
// beside it.
type QRResponse struct {
	QRCode      string  `json:"qr_code"`
	StudentName string  `json:"student_name"`
	Balance     float64 `json:"balance"`
}

// Routes registers the student endpoints.
//
// Routes:
//   - GET /students/:id              : Student profile with current balance.
//   - GET /students/:id/qr           : Card QR code as a PNG data URI.
//   - GET /students/:id/transactions : Ledger entries, newest first.
func Routes(app *fiber.App, reportingSvc *reporting.Service) {
	app.Get("/students/:id", GetStudent(reportingSvc))
	app.Get("/students/:id/qr", GetStudentQR(reportingSvc))
	app.Get("/students/:id/transactions", GetTransactions(reportingSvc))
}

// GetStudent returns a Fiber handler serving the student profile.
func GetStudent(reportingSvc *reporting.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		student, err := reportingSvc.GetStudent(c.Context(), c.Params("id"))
		if err != nil {
			log.Errorf("Failed to get student: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to get student", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Student found", ToStudentResponse(student))
	}
}

// GetStudentQR returns a Fiber handler serving the student card QR.
func GetStudentQR(reportingSvc *reporting.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		qr, err := reportingSvc.GetStudentQR(c.Context(), c.Params("id"))
		if err != nil {
			log.Errorf("Failed to render student QR: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to render student QR", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "QR generated", QRResponse{
			QRCode:      qr.QRCode,
			StudentName: qr.StudentName,
			Balance:     common.MinorToMajor(qr.Balance),
		})
	}
}

// GetTransactions returns a Fiber handler serving the student's history.
func GetTransactions(reportingSvc *reporting.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txs, err := reportingSvc.StudentTransactions(c.Context(), c.Params("id"))
		if err != nil {
			log.Errorf("Failed to list student transactions: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions found", common.ToTransactionResponses(txs))
	}
}

// ToStudentResponse maps the repository projection to the API shape.
func ToStudentResponse(s *dto.StudentRead) StudentResponse {
	return StudentResponse{
		StudentID: s.StudentID,
		Name:      s.Name,
		Balance:   common.MinorToMajor(s.Balance),
		ParentID:  s.ParentID,
		Class:     s.Class,
		Section:   s.Section,
	}
}
