package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Payphone-Digital/instruments/internal/constants"
	"github.com/Payphone-Digital/instruments/internal/dto"
	apperrors "github.com/Payphone-Digital/instruments/internal/errors"
	"github.com/Payphone-Digital/instruments/internal/schema"
	"github.com/Payphone-Digital/instruments/pkg/logger"
	"github.com/Payphone-Digital/instruments/pkg/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxBodyBytes bounds the request body read by ValidateBody.
const maxBodyBytes = 1 << 20

type ValidationMiddleware struct {
	validator *validation.Validator
}

func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{validator: v}
}

// ValidateParams checks the route parameters and stores the parsed _id.
func (m *ValidationMiddleware) ValidateParams() gin.HandlerFunc {
	return func(c *gin.Context) {
		params := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}

		if _, err := m.validator.Validate(schema.Params, validation.FromStrings(params)); err != nil {
			m.reject(c, schema.Params, err)
			return
		}

		id, _ := strconv.Atoi(c.Param(constants.ResponseFieldID))
		c.Set(constants.GinKeyInstrumentID, id)
		c.Next()
	}
}

// ValidateQuery checks the listing query string and stores the parsed query.
func (m *ValidationMiddleware) ValidateQuery() gin.HandlerFunc {
	return func(c *gin.Context) {
		clean, err := m.validator.Validate(schema.Query, validation.FromValues(c.Request.URL.Query()))
		if err != nil {
			m.reject(c, schema.Query, err)
			return
		}

		c.Set(constants.GinKeyListingQuery, dto.ListingQueryFromMap(clean))
		c.Next()
	}
}

// ValidateBody decodes the JSON body and checks it against the instrument
// schema. A body that is not a JSON object fails with the object type error
// and a body over maxBodyBytes is rejected with 413.
func (m *ValidationMiddleware) ValidateBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		var doc any
		if c.Request.Body != nil {
			data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				logger.GetLogger().Warn("Middleware: Request body too large",
					zap.String("client_ip", c.ClientIP()),
					zap.String("path", c.Request.URL.Path),
					zap.Int64("limit", tooLarge.Limit),
				)
				c.AbortWithStatusJSON(apperrors.Response(apperrors.ErrBodyTooLarge, apperrors.Scope{}))
				return
			}
			if err != nil {
				logger.GetLogger().Warn("Middleware: Failed to read request body",
					zap.String("client_ip", c.ClientIP()),
					zap.String("path", c.Request.URL.Path),
					zap.Error(err),
				)
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(data))
			doc = decodeJSON(data)
		}

		clean, err := m.validator.Validate(schema.Body, doc)
		if err != nil {
			m.reject(c, schema.Body, err)
			return
		}

		c.Set(constants.GinKeyInstrument, dto.InstrumentFromMap(clean))
		c.Next()
	}
}

// decodeJSON returns the decoded document, or nil when data is not a single
// valid JSON value.
func decodeJSON(data []byte) any {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil
	}
	if dec.More() {
		return nil
	}
	return doc
}

func (m *ValidationMiddleware) reject(c *gin.Context, schemaName string, err error) {
	errs, ok := validation.AsErrors(err)
	if !ok {
		logger.GetLogger().Error("Middleware: Validation could not run",
			zap.String("schema", schemaName),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(apperrors.Response(apperrors.WrapError(apperrors.ErrInternal, err), apperrors.Scope{}))
		return
	}

	logger.GetLogger().Debug("Middleware: Request validation failed",
		zap.String("schema", schemaName),
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
		zap.Int("error_count", len(errs)),
	)
	c.AbortWithStatusJSON(apperrors.Response(apperrors.NewValidationError(errs), apperrors.Scope{}))
}

// InstrumentID returns the _id stored by ValidateParams.
func InstrumentID(c *gin.Context) int {
	return c.GetInt(constants.GinKeyInstrumentID)
}

// ListingQuery returns the query stored by ValidateQuery.
func ListingQuery(c *gin.Context) dto.ListingQuery {
	q, _ := c.Get(constants.GinKeyListingQuery)
	lq, _ := q.(dto.ListingQuery)
	return lq
}

// InstrumentBody returns the document stored by ValidateBody.
func InstrumentBody(c *gin.Context) dto.InstrumentRequest {
	v, _ := c.Get(constants.GinKeyInstrument)
	req, _ := v.(dto.InstrumentRequest)
	return req
}
