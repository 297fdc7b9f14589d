package api

import (
	"errors"

	models "ShellWatch/internal/domain/models"
	"ShellWatch/internal/services/pricing"
	"ShellWatch/internal/usecase"
	xhttp "ShellWatch/pkg/http"
	xlogger "ShellWatch/pkg/logger"
	"ShellWatch/pkg/util"

	"github.com/labstack/echo/v4"
)

// ShopEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type ShopEchoHandler struct {
	logger  *xlogger.Logger
	builder *usecase.SnapshotBuilder

	bounds        models.PriceBounds
	referenceBase int
	eventEndHour  int64
}

func NewShopEchoHandler(
	logger *xlogger.Logger,
	builder *usecase.SnapshotBuilder,
	bounds models.PriceBounds,
	referenceBase int,
	eventEndHour int64,
) *ShopEchoHandler {
	return &ShopEchoHandler{
		logger:        logger,
		builder:       builder,
		bounds:        bounds,
		referenceBase: referenceBase,
		eventEndHour:  eventEndHour,
	}
}

func (h *ShopEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/snapshot", h.BuildSnapshot)
	g.GET("/snapshot", h.GetSnapshot)
	g.GET("/schedule", h.GetSchedule)
	g.GET("/price", h.GetPrice)
}

// BuildSnapshot ingests a pasted shop payload and returns the ranked snapshot.
func (h *ShopEchoHandler) BuildSnapshot(c echo.Context) error {
	req := &models.SnapshotBuildRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	snapshot, err := h.builder.Build(c.Request().Context(), req.IdentityID, req.Payload, req.Pinned, util.CurrentUnixHour())
	if err != nil {
		if errors.Is(err, models.ErrMalformedIntake) {
			return xhttp.BadRequestResponse(c, err.Error())
		}
		h.logger.Error("snapshot build error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, snapshot)
}

// GetSnapshot returns the cached snapshot for the current hour, if any.
func (h *ShopEchoHandler) GetSnapshot(c echo.Context) error {
	req := &models.SnapshotGetRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	snapshot, err := h.builder.Cached(c.Request().Context(), req.IdentityID, util.CurrentUnixHour())
	if err != nil {
		return xhttp.NotFoundResponse(c, "no snapshot for current hour")
	}
	return xhttp.SuccessResponse(c, snapshot)
}

// GetSchedule simulates the purchase windows for one item over an hour range.
// Defaults: from the current hour through the end of the event.
func (h *ShopEchoHandler) GetSchedule(c echo.Context) error {
	req := &models.ScheduleRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	from := req.FromHour
	if from == 0 {
		from = util.CurrentUnixHour()
	}
	to := req.ToHour
	if to == 0 {
		to = h.eventEndHour
	}
	if to < from {
		to = from
	}

	schedule := pricing.BuildSchedule(req.IdentityID, req.ItemID, from, to, h.referenceBase)
	if req.Limit > 0 && len(schedule) > req.Limit {
		schedule = schedule[:req.Limit]
	}
	return xhttp.SuccessResponse(c, schedule)
}

// GetPrice computes the exact price for one item at one hour. A zero base
// price falls back to the reference base.
func (h *ShopEchoHandler) GetPrice(c echo.Context) error {
	req := &models.PriceRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	base := req.BasePrice
	if base == 0 {
		base = h.referenceBase
	}
	hour := req.Hour
	if hour == 0 {
		hour = util.CurrentUnixHour()
	}

	price := pricing.Price(req.IdentityID, req.ItemID, base, hour, h.bounds)
	return xhttp.SuccessResponse(c, echo.Map{
		"identityId": req.IdentityID,
		"itemId":     req.ItemID,
		"basePrice":  base,
		"hour":       hour,
		"price":      price,
	})
}
