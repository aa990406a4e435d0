package dto

// RegisterRequest HTTP注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"pass1234"`
	Name     string `json:"name" binding:"required,min=2,max=50" example:"Alice"`
}

// RegisterResponse HTTP注册响应
type RegisterResponse struct {
	CustomerID uint   `json:"customer_id" example:"1"`
	Email      string `json:"email" example:"alice@example.com"`
	Name       string `json:"name" example:"Alice"`
}

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"pass1234"`
}

// LoginResponse HTTP登录响应
type LoginResponse struct {
	CustomerID   uint   `json:"customer_id" example:"1"`
	Name         string `json:"name" example:"Alice"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in" example:"7200"`
}
