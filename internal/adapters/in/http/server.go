// Package http provides the REST adapter. It translates echo requests into
// commands and queries, and maps the error taxonomy onto status codes:
// validation failures become 400, unknown tracking numbers 404, everything
// else 500.
package http

import (
	"errors"
	"net/http"
	"time"

	"delivery/internal/core/application/usecases/commands"
	"delivery/internal/core/application/usecases/queries"
	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createDeliveryHandler commands.CreateDeliveryCommandHandler
	assignDeliveryHandler commands.AssignDeliveryCommandHandler
	updateStatusHandler   commands.UpdateDeliveryStatusCommandHandler

	getByTrackingNumberHandler queries.GetDeliveryByTrackingNumberQueryHandler
	getDeliveriesHandler       queries.GetDeliveriesQueryHandler
}

// NewServer creates the HTTP server with the required command and query handlers.
func NewServer(
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	assignDeliveryHandler commands.AssignDeliveryCommandHandler,
	updateStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	getByTrackingNumberHandler queries.GetDeliveryByTrackingNumberQueryHandler,
	getDeliveriesHandler queries.GetDeliveriesQueryHandler,
) *Server {
	return &Server{
		createDeliveryHandler:      createDeliveryHandler,
		assignDeliveryHandler:      assignDeliveryHandler,
		updateStatusHandler:        updateStatusHandler,
		getByTrackingNumberHandler: getByTrackingNumberHandler,
		getDeliveriesHandler:       getDeliveriesHandler,
	}
}

// RegisterRoutes mounts the delivery API under /api/v1/deliveries.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1/deliveries")
	api.POST("", s.CreateDelivery)
	api.GET("", s.GetDeliveries)
	api.GET("/:trackingNumber", s.GetDelivery)
	api.GET("/tracking/:trackingNumber", s.GetDelivery)
	api.GET("/status/:status", s.GetDeliveriesByStatus)
	api.GET("/driver/:driverId", s.GetDeliveriesByDriver)
	api.PUT("/:trackingNumber/status", s.UpdateDeliveryStatus)
	api.PUT("/:trackingNumber/assign", s.AssignDelivery)
}

// ErrorResponse is the JSON error body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateDeliveryRequest carries the intake fields for a new delivery.
type CreateDeliveryRequest struct {
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	PickupAddress   string  `json:"pickupAddress"`
	DeliveryAddress string  `json:"deliveryAddress"`
	PickupCity      string  `json:"pickupCity"`
	DeliveryCity    string  `json:"deliveryCity"`
	Weight          float64 `json:"weight"`
	Price           float64 `json:"price"`
	Notes           string  `json:"notes,omitempty"`
}

// UpdateStatusRequest carries a status change; nil notes leave
// existing notes untouched.
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

// DeliveryResponse is the JSON representation of one delivery.
type DeliveryResponse struct {
	ID              uint64     `json:"id"`
	TrackingNumber  string     `json:"trackingNumber"`
	CustomerName    string     `json:"customerName"`
	CustomerPhone   string     `json:"customerPhone"`
	PickupAddress   string     `json:"pickupAddress"`
	DeliveryAddress string     `json:"deliveryAddress"`
	PickupCity      string     `json:"pickupCity"`
	DeliveryCity    string     `json:"deliveryCity"`
	Weight          float64    `json:"weight"`
	Price           float64    `json:"price"`
	Status          string     `json:"status"`
	DriverID        string     `json:"driverId,omitempty"`
	VehicleID       string     `json:"vehicleId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	PickupTime      *time.Time `json:"pickupTime,omitempty"`
	DeliveryTime    *time.Time `json:"deliveryTime,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// CreateDelivery handles POST /api/v1/deliveries.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var req CreateDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateDeliveryCommand(
		req.CustomerName, req.CustomerPhone,
		req.PickupAddress, req.DeliveryAddress,
		req.PickupCity, req.DeliveryCity,
		req.Weight, req.Price, req.Notes)
	if err != nil {
		return badRequest(ctx, "Invalid delivery data: "+err.Error())
	}

	created, err := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err, "Failed to create delivery")
	}

	return ctx.JSON(http.StatusCreated, fromAggregate(created))
}

// GetDeliveries handles GET /api/v1/deliveries.
func (s *Server) GetDeliveries(ctx echo.Context) error {
	return s.list(ctx, queries.NewGetDeliveriesQuery())
}

// GetDelivery handles GET /api/v1/deliveries/:trackingNumber and its
// /tracking alias.
func (s *Server) GetDelivery(ctx echo.Context) error {
	trackingNumber, err := kernel.TrackingNumberFromString(ctx.Param("trackingNumber"))
	if err != nil {
		return badRequest(ctx, "Malformed tracking number")
	}

	query, err := queries.NewGetDeliveryByTrackingNumberQuery(trackingNumber)
	if err != nil {
		return badRequest(ctx, "Malformed tracking number")
	}

	resp, err := s.getByTrackingNumberHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err, "Failed to retrieve delivery")
	}

	return ctx.JSON(http.StatusOK, fromReadModel(resp))
}

// GetDeliveriesByStatus handles GET /api/v1/deliveries/status/:status.
func (s *Server) GetDeliveriesByStatus(ctx echo.Context) error {
	status, err := delivery.StatusFromString(ctx.Param("status"))
	if err != nil {
		return badRequest(ctx, "Unknown status: "+ctx.Param("status"))
	}

	query, err := queries.NewGetDeliveriesByStatusQuery(status)
	if err != nil {
		return badRequest(ctx, "Unknown status: "+ctx.Param("status"))
	}

	return s.list(ctx, query)
}

// GetDeliveriesByDriver handles GET /api/v1/deliveries/driver/:driverId.
func (s *Server) GetDeliveriesByDriver(ctx echo.Context) error {
	query, err := queries.NewGetDeliveriesByDriverQuery(ctx.Param("driverId"))
	if err != nil {
		return badRequest(ctx, "Driver identifier is required")
	}

	return s.list(ctx, query)
}

// UpdateDeliveryStatus handles PUT /api/v1/deliveries/:trackingNumber/status.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	trackingNumber, err := kernel.TrackingNumberFromString(ctx.Param("trackingNumber"))
	if err != nil {
		return badRequest(ctx, "Malformed tracking number")
	}

	var req UpdateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Unknown status: "+req.Status)
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(trackingNumber, status, req.Notes)
	if err != nil {
		return badRequest(ctx, "Invalid status update: "+err.Error())
	}

	updated, err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err, "Failed to update delivery status")
	}

	return ctx.JSON(http.StatusOK, fromAggregate(updated))
}

// AssignDelivery handles PUT /api/v1/deliveries/:trackingNumber/assign.
// Driver and vehicle identifiers arrive as query parameters.
func (s *Server) AssignDelivery(ctx echo.Context) error {
	trackingNumber, err := kernel.TrackingNumberFromString(ctx.Param("trackingNumber"))
	if err != nil {
		return badRequest(ctx, "Malformed tracking number")
	}

	cmd, err := commands.NewAssignDeliveryCommand(
		trackingNumber,
		ctx.QueryParam("driverId"),
		ctx.QueryParam("vehicleId"))
	if err != nil {
		return badRequest(ctx, "Invalid assignment: "+err.Error())
	}

	assigned, err := s.assignDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err, "Failed to assign delivery")
	}

	return ctx.JSON(http.StatusOK, fromAggregate(assigned))
}

func (s *Server) list(ctx echo.Context, query queries.GetDeliveriesQuery) error {
	deliveries, err := s.getDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err, "Failed to retrieve deliveries")
	}

	response := make([]DeliveryResponse, len(deliveries))
	for i, d := range deliveries {
		response[i] = fromReadModel(d)
	}

	return ctx.JSON(http.StatusOK, response)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func mapDomainError(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}
}

func fromAggregate(d *delivery.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:              d.ID(),
		TrackingNumber:  d.TrackingNumber().String(),
		CustomerName:    d.CustomerName(),
		CustomerPhone:   d.CustomerPhone(),
		PickupAddress:   d.PickupAddress(),
		DeliveryAddress: d.DeliveryAddress(),
		PickupCity:      d.PickupCity(),
		DeliveryCity:    d.DeliveryCity(),
		Weight:          d.Weight(),
		Price:           d.Price(),
		Status:          d.Status().String(),
		DriverID:        d.DriverID(),
		VehicleID:       d.VehicleID(),
		CreatedAt:       d.CreatedAt(),
		UpdatedAt:       d.UpdatedAt(),
		PickupTime:      d.PickupTime(),
		DeliveryTime:    d.DeliveryTime(),
		Notes:           d.Notes(),
	}
}

func fromReadModel(r queries.DeliveryResponse) DeliveryResponse {
	return DeliveryResponse{
		ID:              r.ID,
		TrackingNumber:  r.TrackingNumber,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		PickupAddress:   r.PickupAddress,
		DeliveryAddress: r.DeliveryAddress,
		PickupCity:      r.PickupCity,
		DeliveryCity:    r.DeliveryCity,
		Weight:          r.Weight,
		Price:           r.Price,
		Status:          r.Status,
		DriverID:        r.DriverID,
		VehicleID:       r.VehicleID,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		PickupTime:      r.PickupTime,
		DeliveryTime:    r.DeliveryTime,
		Notes:           r.Notes,
	}
}
