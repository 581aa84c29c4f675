package handlers

import (
	"context"
	"sync"

	intconfig "backend/internal/config"
	"backend/internal/locks"
	"backend/internal/notify"
	"backend/internal/payment"
	"backend/internal/repositories"
	"backend/internal/services"
)

// Deps carries the process-wide collaborators handlers cannot build per
// request: the lock backend, notification channels and the gateway port.
type Deps struct {
	Locker   locks.Locker
	Notify   notify.Dispatcher
	Verifier payment.Verifier
}

var (
	depsMu sync.RWMutex
	deps   = Deps{
		Locker: locks.NewKeyedMutex(),
		Verifier: payment.VerifierFunc(func(ctx context.Context, ref string, amount int64) (payment.Verdict, error) {
			// No gateway configured: card payments stay PENDING for manual review.
			return payment.VerdictUnknown, nil
		}),
	}
)

// Configure installs the shared collaborators. Call once at boot.
func Configure(d Deps) {
	depsMu.Lock()
	defer depsMu.Unlock()
	if d.Locker != nil {
		deps.Locker = d.Locker
	}
	if d.Verifier != nil {
		deps.Verifier = d.Verifier
	}
	deps.Notify = d.Notify
}

func getDeps() Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return deps
}

func capacityService(rid string) services.CapacityService {
	d := getDeps()
	return services.CapacityService{
		Bookings:  repositories.BookingRepository{DB: intconfig.DB},
		Routes:    repositories.RouteRepository{DB: intconfig.DB},
		Locker:    d.Locker,
		RequestID: rid,
	}
}

func revenueService(rid string) services.RevenueService {
	return services.RevenueService{
		Ledger:    repositories.TransactionRepository{DB: intconfig.DB},
		Bookings:  repositories.BookingRepository{DB: intconfig.DB},
		Routes:    repositories.RouteRepository{DB: intconfig.DB},
		Companies: repositories.CompanyRepository{DB: intconfig.DB},
		Settings:  repositories.SettingRepository{DB: intconfig.DB},
		RequestID: rid,
	}
}

func bookingService(rid string) services.BookingService {
	d := getDeps()
	n := d.Notify
	n.RequestID = rid
	return services.BookingService{
		Bookings:  repositories.BookingRepository{DB: intconfig.DB},
		Routes:    repositories.RouteRepository{DB: intconfig.DB},
		Capacity:  capacityService(rid),
		Revenue:   revenueService(rid),
		Settings:  repositories.SettingRepository{DB: intconfig.DB},
		Verifier:  d.Verifier,
		Notify:    n,
		RequestID: rid,
	}
}

func financeService() services.FinanceService {
	return services.FinanceService{
		Ledger:    repositories.TransactionRepository{DB: intconfig.DB},
		Bookings:  repositories.BookingRepository{DB: intconfig.DB},
		Companies: repositories.CompanyRepository{DB: intconfig.DB},
	}
}

func withdrawalService(rid string) services.WithdrawalService {
	d := getDeps()
	n := d.Notify
	n.RequestID = rid
	return services.WithdrawalService{
		Ledger:    repositories.TransactionRepository{DB: intconfig.DB},
		Finance:   financeService(),
		Locker:    d.Locker,
		Notify:    n,
		RequestID: rid,
	}
}

func routeService(rid string) services.RouteService {
	return services.RouteService{
		Routes:    repositories.RouteRepository{DB: intconfig.DB},
		Bookings:  repositories.BookingRepository{DB: intconfig.DB},
		Vehicles:  repositories.CompanyRepository{DB: intconfig.DB},
		RequestID: rid,
	}
}

func ledgerService(rid string) services.LedgerService {
	return services.LedgerService{
		Ledger:    repositories.TransactionRepository{DB: intconfig.DB},
		Companies: repositories.CompanyRepository{DB: intconfig.DB},
		RequestID: rid,
	}
}

func reportsService(rid string) services.ReportsService {
	return services.ReportsService{
		Finance:   financeService(),
		Ledger:    repositories.TransactionRepository{DB: intconfig.DB},
		Companies: repositories.CompanyRepository{DB: intconfig.DB},
		RequestID: rid,
	}
}
