// Package reporting serves the read-only projections: balance lookups,
// transaction history and the QR payloads printed on cards and vendor
// stalls. No mutation happens here.
package reporting

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/campuspay/backend/pkg/domain"
	"github.com/campuspay/backend/pkg/dto"
	"github.com/campuspay/backend/pkg/repository"
	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

// StudentQR bundles a student's QR image with the card-display fields.
type StudentQR struct {
	QRCode      string
	Payload     string
	StudentName string
	Balance     int64
}

// VendorQR bundles a vendor's UPI QR image with its payload.
type VendorQR struct {
	QRCode  string
	Payload string
}

// Service exposes the read-side of the ledger store.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a reporting Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// GetStudent returns the student projection.
func (s *Service) GetStudent(ctx context.Context, studentID string) (*dto.StudentRead, error) {
	return s.uow.Students().Get(ctx, studentID)
}

// GetVendor returns the vendor projection including its settlement balance.
func (s *Service) GetVendor(ctx context.Context, vendorID string) (*dto.VendorRead, error) {
	return s.uow.Vendors().Get(ctx, vendorID)
}

// StudentTransactions returns the student's ledger entries, newest first.
func (s *Service) StudentTransactions(ctx context.Context, studentID string) ([]*dto.TransactionRead, error) {
	if _, err := s.uow.Students().Get(ctx, studentID); err != nil {
		return nil, err
	}
	return s.uow.Transactions().ListByStudent(ctx, studentID)
}

// VendorTransactions returns the vendor's ledger entries, newest first.
func (s *Service) VendorTransactions(ctx context.Context, vendorID string) ([]*dto.TransactionRead, error) {
	if _, err := s.uow.Vendors().Get(ctx, vendorID); err != nil {
		return nil, err
	}
	return s.uow.Transactions().ListByVendor(ctx, vendorID)
}

// GetStudentQR renders the student's card QR: a JSON payload carrying the
// card id, plus the name and balance shown next to it.
func (s *Service) GetStudentQR(ctx context.Context, studentID string) (*StudentQR, error) {
	student, err := s.uow.Students().Get(ctx, studentID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]string{"student_id": student.StudentID})
	if err != nil {
		return nil, err
	}
	dataURI, err := encodeQR(string(payload))
	if err != nil {
		return nil, err
	}
	return &StudentQR{
		QRCode:      dataURI,
		Payload:     string(payload),
		StudentName: student.Name,
		Balance:     student.Balance,
	}, nil
}

// GetVendorQR renders the vendor's UPI intent QR.
func (s *Service) GetVendorQR(ctx context.Context, vendorID string) (*VendorQR, error) {
	vendor, err := s.uow.Vendors().Get(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	payload := domain.UpiIntentFor(vendor.UpiID)
	dataURI, err := encodeQR(payload)
	if err != nil {
		return nil, err
	}
	return &VendorQR{QRCode: dataURI, Payload: payload}, nil
}

// encodeQR renders the payload as a PNG data URI.
func encodeQR(payload string) (string, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, qrSize)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
