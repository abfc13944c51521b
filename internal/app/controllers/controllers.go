package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/app/models/dto"
	"github.com/drivera/aulanet/internal/middleware"
)

// courseQueryParam is the query parameter narrowing a listing to one course
const courseQueryParam = "curso"

// actingAccount pulls the authenticated account from the request
// context, aborting with 401 when the auth middleware did not run.
func actingAccount(ctx *gin.Context) (*models.Account, bool) {
	account, ok := middleware.AccountFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return account, true
}

// parseIDParam parses a numeric path parameter, writing a 400 on failure
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithDetails(name + " must be a valid number")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// parseCourseQuery reads the optional course narrowing parameter. A
// missing parameter yields nil; a non-numeric value is a 400.
func parseCourseQuery(ctx *gin.Context) (*int64, bool) {
	raw := ctx.Query(courseQueryParam)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course filter").
			WithDetails(courseQueryParam + " must be a valid number")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return &id, true
}
