package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/utils"
)

// RouteWriter is the route persistence for admin flows.
type RouteWriter interface {
	RouteStore
	Insert(ctx context.Context, rt *models.Route) error
	UpdateSchedule(ctx context.Context, id int64, departure time.Time, capacity int) error
	ListByCompany(ctx context.Context, companyID int64) ([]models.Route, error)
}

// RouteBookingStore is the booking slice reschedules operate on.
type RouteBookingStore interface {
	CountByRouteStatus(ctx context.Context, routeID int64, statuses []models.BookingStatus) (int, error)
	BulkTransition(ctx context.Context, routeID int64, from []models.BookingStatus, to models.BookingStatus) (int64, error)
}

// VehicleSource resolves the vehicle assigned to a new route.
type VehicleSource interface {
	GetVehicle(ctx context.Context, id int64) (models.Vehicle, error)
}

type RouteDraft struct {
	CompanyID        int64  `json:"company_id"`
	VehicleID        int64  `json:"vehicle_id"`
	OriginCity       string `json:"origin_city"`
	OriginState      string `json:"origin_state"`
	DestinationCity  string `json:"destination_city"`
	DestinationState string `json:"destination_state"`
	Price            int64  `json:"price"`
	Departure        string `json:"departure"` // "YYYY-MM-DD HH:MM:SS"
	DurationMinutes  int    `json:"duration_minutes"`
}

// RouteService owns route creation and the controlled reschedule path.
type RouteService struct {
	Routes    RouteWriter
	Bookings  RouteBookingStore
	Vehicles  VehicleSource
	RequestID string
}

// Create registers a new scheduled trip, snapshotting capacity from the
// assigned vehicle. The vehicle must belong to the owning company.
func (s RouteService) Create(ctx context.Context, d RouteDraft) (models.Route, error) {
	if d.CompanyID <= 0 {
		return models.Route{}, domain.ValidationError{Field: "company_id", Msg: "id tidak valid"}
	}
	if d.Price <= 0 {
		return models.Route{}, domain.ValidationError{Field: "price", Msg: "harga harus positif"}
	}
	if strings.TrimSpace(d.OriginCity) == "" || strings.TrimSpace(d.DestinationCity) == "" {
		return models.Route{}, domain.ValidationError{Field: "route", Msg: "kota asal dan tujuan wajib diisi"}
	}

	departure, err := utils.ParseDateTime(d.Departure)
	if err != nil {
		return models.Route{}, domain.ValidationError{Field: "departure", Msg: "format tanggal tidak valid", Err: err}
	}

	vehicle, err := s.Vehicles.GetVehicle(ctx, d.VehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Route{}, domain.NotFoundError{Resource: "vehicle", Err: err}
		}
		return models.Route{}, domain.InternalError{Err: err}
	}
	if vehicle.CompanyID != d.CompanyID {
		return models.Route{}, domain.ValidationError{Field: "vehicle_id", Msg: "kendaraan bukan milik perusahaan"}
	}

	rt := models.Route{
		CompanyID:        d.CompanyID,
		VehicleID:        vehicle.ID,
		Capacity:         vehicle.Capacity,
		OriginCity:       strings.TrimSpace(d.OriginCity),
		OriginState:      strings.TrimSpace(d.OriginState),
		DestinationCity:  strings.TrimSpace(d.DestinationCity),
		DestinationState: strings.TrimSpace(d.DestinationState),
		Price:            d.Price,
		Departure:        departure,
		DurationMinutes:  d.DurationMinutes,
	}
	if err := s.Routes.Insert(ctx, &rt); err != nil {
		return models.Route{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "route", "create",
		fmt.Sprintf("route_id=%d company_id=%d capacity=%d", rt.ID, rt.CompanyID, rt.Capacity))
	return rt, nil
}

// Reschedule applies a departure change. Moving to a different calendar
// day closes out the old trip instance: every PENDING/CONFIRMED booking
// flips to COMPLETED, which frees the seats for counter sales (the
// online occupying set keeps counting COMPLETED rows, see
// models.OnlineOccupying). A same-day time change keeps the bookings,
// but the new capacity must still fit every CONFIRMED seat.
func (s RouteService) Reschedule(ctx context.Context, routeID int64, newDeparture time.Time, newCapacity int) error {
	if newCapacity <= 0 {
		return domain.ValidationError{Field: "capacity", Msg: "kapasitas harus positif"}
	}

	route, err := s.Routes.GetByID(ctx, routeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "route", Err: err}
		}
		return domain.InternalError{Err: err}
	}

	if route.SameTravelDay(newDeparture) {
		confirmed, err := s.Bookings.CountByRouteStatus(ctx, routeID,
			[]models.BookingStatus{models.BookingConfirmed})
		if err != nil {
			return domain.InternalError{Err: err}
		}
		if newCapacity < confirmed {
			return domain.CapacityError{RouteID: routeID, Conflicting: confirmed}
		}
	} else {
		moved, err := s.Bookings.BulkTransition(ctx, routeID,
			[]models.BookingStatus{models.BookingPending, models.BookingConfirmed},
			models.BookingCompleted)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		utils.LogEvent(s.RequestID, "route", "reschedule",
			fmt.Sprintf("route_id=%d moved=%d booking ke COMPLETED", routeID, moved))
	}

	if err := s.Routes.UpdateSchedule(ctx, routeID, newDeparture, newCapacity); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
