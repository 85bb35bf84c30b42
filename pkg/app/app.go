// Package app is the composition root: it assembles the services from
// their dependencies so cmd/server and the tests share one wiring.
package app

import (
	"log/slog"

	"github.com/campuspay/backend/pkg/config"
	"github.com/campuspay/backend/pkg/provider/payment"
	"github.com/campuspay/backend/pkg/repository"
	"github.com/campuspay/backend/pkg/service/recharge"
	"github.com/campuspay/backend/pkg/service/reporting"
	"github.com/campuspay/backend/pkg/service/transfer"
)

// Deps contains the infrastructure dependencies the services are built on.
type Deps struct {
	Uow     repository.UnitOfWork
	Gateway payment.Gateway
	Logger  *slog.Logger
}

// App bundles the configured services behind one handle.
type App struct {
	Deps             *Deps
	Config           *config.App
	TransferService  *transfer.Service
	RechargeService  *recharge.Service
	ReportingService *reporting.Service
}

// New assembles the application services.
func New(deps *Deps, cfg *config.App) *App {
	return &App{
		Deps:             deps,
		Config:           cfg,
		TransferService:  transfer.New(deps.Uow, deps.Logger),
		RechargeService:  recharge.New(deps.Uow, deps.Gateway, deps.Logger),
		ReportingService: reporting.New(deps.Uow, deps.Logger),
	}
}
