package handler

import (
	"net/http"

	"github.com/Payphone-Digital/instruments/internal/constants"
	apperrors "github.com/Payphone-Digital/instruments/internal/errors"
	"github.com/Payphone-Digital/instruments/internal/middleware"
	"github.com/Payphone-Digital/instruments/internal/service"
	ctxutil "github.com/Payphone-Digital/instruments/pkg/context"
	"github.com/Payphone-Digital/instruments/pkg/logger"
	"github.com/gin-gonic/gin"
)

// InstrumentHandler serves the /api resource. Input has already been
// validated by the middleware chain of each route.
type InstrumentHandler struct {
	service *service.InstrumentService
}

func NewInstrumentHandler(svc *service.InstrumentService) *InstrumentHandler {
	return &InstrumentHandler{service: svc}
}

func (h *InstrumentHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "List")
	query := middleware.ListingQuery(c)

	res, err := h.service.List(ctx, query, c.Request.URL.Query())
	if err != nil {
		logger.InfoWithContext(ctx, "Listing request failed").
			String("search", query.Search).
			StatusCode(apperrors.ToHTTPStatus(err)).
			Err(err).
			Log()
		writeError(c, err, apperrors.Scope{})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *InstrumentHandler) Get(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Get")
	id := middleware.InstrumentID(c)

	res, err := h.service.GetByID(ctx, id)
	if err != nil {
		writeError(c, err, apperrors.Scope{ID: id})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *InstrumentHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Create")
	req := middleware.InstrumentBody(c)

	id, err := h.service.Create(ctx, req)
	if err != nil {
		writeError(c, err, apperrors.Scope{Name: req.Name})
		return
	}

	logger.InfoWithContext(ctx, "Instrument created").
		Int("instrument_id", id).
		Log()

	c.JSON(http.StatusCreated, constants.BuildCreatedResponse(id, req.Name, constants.MsgCreated))
}

func (h *InstrumentHandler) Replace(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Replace")
	id := middleware.InstrumentID(c)
	req := middleware.InstrumentBody(c)

	if err := h.service.Replace(ctx, id, req); err != nil {
		writeError(c, err, apperrors.Scope{ID: id, Name: req.Name})
		return
	}

	c.JSON(http.StatusOK, constants.BuildMutationResponse(id, constants.MsgUpdated))
}

func (h *InstrumentHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Delete")
	id := middleware.InstrumentID(c)

	if err := h.service.Delete(ctx, id); err != nil {
		writeError(c, err, apperrors.Scope{ID: id})
		return
	}

	c.JSON(http.StatusOK, constants.BuildMutationResponse(id, constants.MsgDeleted))
}
