package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"3600"`
}

// RegisterRequest represents a student self-registration request
type RegisterRequest struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required,min=6"`
	CourseID *int64  `json:"courseId,omitempty"`
	Cedula   string  `json:"cedula" binding:"required"`
	Names    string  `json:"names" binding:"required"`
	Surnames string  `json:"surnames" binding:"required"`
	Grade    *string `json:"grade,omitempty"`
	Group    *string `json:"group,omitempty"`
	Phone    string  `json:"phone"`
}

// AccountResponse represents basic account information
type AccountResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	IsStaff     bool   `json:"isStaff"`
	IsSuperuser bool   `json:"isSuperuser"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token   TokenResponse   `json:"token"`
	Account AccountResponse `json:"account"`
}
