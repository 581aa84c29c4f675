package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/locks"
	"backend/internal/utils"
)

// CapacityBookingStore is the slice of the booking store the capacity
// counter needs.
type CapacityBookingStore interface {
	CountByRouteStatus(ctx context.Context, routeID int64, statuses []models.BookingStatus) (int, error)
}

// RouteStore loads route + capacity reference data.
type RouteStore interface {
	GetByID(ctx context.Context, id int64) (models.Route, error)
}

// CapacityService allocates scarce seat inventory. Seat numbering is
// sequential and monotonic per route: the next index is the occupying
// count plus one. The check-then-insert runs inside a per-route lock so
// two concurrent requests cannot both pass the capacity check.
type CapacityService struct {
	Bookings  CapacityBookingStore
	Routes    RouteStore
	Locker    locks.Locker
	RequestID string
}

// SeatLabel renders the label for qty seats starting at index start:
// "3" for one seat, "3-5" for a range.
func SeatLabel(start, qty int) string {
	if qty <= 1 {
		return strconv.Itoa(start)
	}
	return fmt.Sprintf("%d-%d", start, start+qty-1)
}

// CountOccupying counts seats held by bookings in the given status set.
func (s CapacityService) CountOccupying(ctx context.Context, routeID int64, statuses []models.BookingStatus) (int, error) {
	return s.Bookings.CountByRouteStatus(ctx, routeID, statuses)
}

// Reserve checks remaining capacity and, while still holding the route
// lock, hands the assigned seat label to create so the booking insert
// happens inside the critical section. A nil create only performs the
// check. Returns the seat label on success.
func (s CapacityService) Reserve(ctx context.Context, routeID int64, qty int, statuses []models.BookingStatus, create func(ctx context.Context, seatLabel string) error) (string, error) {
	if qty <= 0 {
		return "", domain.ValidationError{Field: "seats", Msg: "jumlah kursi harus positif"}
	}

	unlock, err := s.Locker.Lock(ctx, "route:"+strconv.FormatInt(routeID, 10))
	if err != nil {
		return "", domain.InternalError{Msg: "gagal mengunci rute", Err: err}
	}
	defer unlock()

	route, err := s.Routes.GetByID(ctx, routeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.NotFoundError{Resource: "route", Err: err}
		}
		return "", domain.InternalError{Err: err}
	}

	occupied, err := s.Bookings.CountByRouteStatus(ctx, routeID, statuses)
	if err != nil {
		return "", domain.InternalError{Err: err}
	}

	available := route.Capacity - occupied
	if qty > available {
		utils.LogEvent(s.RequestID, "capacity", "reserve",
			fmt.Sprintf("route_id=%d requested=%d available=%d", routeID, qty, available))
		return "", domain.CapacityError{RouteID: routeID, Requested: qty, Available: available}
	}

	label := SeatLabel(occupied+1, qty)
	if create != nil {
		if err := create(ctx, label); err != nil {
			return "", err
		}
	}
	return label, nil
}
