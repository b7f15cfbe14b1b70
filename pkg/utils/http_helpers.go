package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "aircon-admin/pkg/errors"
	"aircon-admin/pkg/types"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

const (
	DefaultLimit = 20
	MaxLimit     = 500
)

func ParseFilterFromQuery(values url.Values) types.Filter {
	filterReq := types.Filter{
		Sort:   make(map[string]string),
		Filter: make(map[string]interface{}),
		Limit:  DefaultLimit,
		Page:   1,
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				filterReq.Limit = MaxLimit
			} else {
				filterReq.Limit = l
			}
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filterReq.Page = p
		}
	}

	if offsetStr := values.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filterReq.Offset = o
		}
	} else {
		filterReq.Offset = (filterReq.Page - 1) * filterReq.Limit
	}

	filterReq.WithPagination = values.Get("withPagination") != "false"

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}

		if key == "search" {
			filterReq.Search = strings.TrimSpace(vals[0])
			continue
		}

		if strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]") {
			field := key[5 : len(key)-1]
			direction := strings.ToLower(vals[0])
			if direction == "asc" || direction == "desc" {
				filterReq.Sort[field] = direction
			}
			continue
		}

		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			field := key[7 : len(key)-1]
			filterReq.Filter[field] = strings.Join(vals, ",")
		}
	}

	return filterReq
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HTTPResponse{Status: true, Message: message}
	if len(total) > 0 {
		filter := ParseFilterFromQuery(ctx.Request().URL.Query())
		totalPages := 0
		if filter.Limit > 0 {
			totalPages = int((total[0] + uint64(filter.Limit) - 1) / uint64(filter.Limit))
		}
		response.Body = map[string]interface{}{
			"list": body,
			"pagination": types.Pagination{
				TotalCount: total[0],
				Page:       filter.Page,
				Limit:      filter.Limit,
				TotalPages: totalPages,
			},
		}
	} else {
		response.Body = body
	}
	return ctx.JSON(code, response)
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		var valErr *apperrors.ValidationError
		var fieldErrs validator.ValidationErrors
		switch {
		case errors.As(httpErr.Err, &valErr):
			return validationResponse(c, valErr)
		case errors.As(httpErr.Err, &fieldErrs):
			return validationResponse(c, fromValidatorErrors(fieldErrs))
		}

		if httpErr.Err != nil && httpErr.Code >= http.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}

		response := HTTPResponse{Status: false, Message: httpErr.Message}
		if httpErr.Details != nil {
			response.Body = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var valErr *apperrors.ValidationError
	if errors.As(err, &valErr) {
		return validationResponse(c, valErr)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return validationResponse(c, fromValidatorErrors(validationErrors))
	}

	if code, ok := apperrors.StatusCode(err); ok {
		if code >= http.StatusInternalServerError {
			logger.Error("Operation failed", zap.Error(err))
			return c.JSON(code, HTTPResponse{Status: false, Message: apperrors.ErrOperationFailed.Error()})
		}
		return c.JSON(code, HTTPResponse{Status: false, Message: rootSentinelMessage(err)})
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, HTTPResponse{
		Status:  false,
		Message: "internal server error",
	})
}

func validationResponse(c echo.Context, valErr *apperrors.ValidationError) error {
	return c.JSON(http.StatusBadRequest, HTTPResponse{
		Status:  false,
		Message: "validation failed",
		Body:    valErr.Fields,
	})
}

// fromValidatorErrors keys each failure by the JSON field name registered on the validator.
func fromValidatorErrors(errs validator.ValidationErrors) *apperrors.ValidationError {
	out := &apperrors.ValidationError{Fields: make(map[string]string, len(errs))}
	for _, e := range errs {
		field := e.Field()
		if ns := e.Namespace(); strings.Contains(ns, ".") {
			field = ns[strings.Index(ns, ".")+1:]
		}
		msg := fmt.Sprintf("failed on '%s'", e.Tag())
		if e.Param() != "" {
			msg = fmt.Sprintf("failed on '%s=%s'", e.Tag(), e.Param())
		}
		out.Add(field, msg)
	}
	return out
}

// rootSentinelMessage hides wrapping context from clients and returns the sentinel text only.
func rootSentinelMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
