// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivera/aulanet/internal/app/models/dto"
	"github.com/drivera/aulanet/internal/app/services"
	"github.com/drivera/aulanet/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register handles student self-registration
// @Summary Register a new student
// @Description Creates a student login account together with its profile. Accounts created here carry no administrative rights.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Student registration information"
// @Success 201 {object} dto.StructuredResponse{data=dto.StudentResponse} "Student registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Chosen course not found"
// @Failure 409 {object} dto.ErrorResponse "Username or cedula already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	profile, err := c.authService.Register(ctx.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		CourseID: req.CourseID,
		Cedula:   req.Cedula,
		Names:    req.Names,
		Surnames: req.Surnames,
		Grade:    req.Grade,
		Group:    req.Group,
		Phone:    req.Phone,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.NewStudentResponse(profile), "Student registered"))
}

// Login handles credential checks and token issuing
// @Summary Log in
// @Description Checks username and password and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.StructuredResponse{data=dto.AuthResponse} "Authenticated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid username or password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: result.Token,
			TokenType:   "Bearer",
			ExpiresIn:   result.ExpiresIn,
		},
		Account: dto.AccountResponse{
			ID:          result.Account.ID,
			Username:    result.Account.Username,
			IsStaff:     result.Account.IsStaff,
			IsSuperuser: result.Account.IsSuperuser,
		},
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Authenticated"))
}
