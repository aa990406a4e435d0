package customer

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/customer"
)

// RegisterUseCase 顾客注册用例
type RegisterUseCase struct {
	service customer.Service
	logger  *logrus.Logger
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(service customer.Service, logger *logrus.Logger) *RegisterUseCase {
	return &RegisterUseCase{service: service, logger: logger}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	CustomerID uint   `json:"customer_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	c, err := uc.service.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return nil, err
	}

	uc.logger.WithFields(logrus.Fields{
		"customer_id": c.ID,
		"email":       c.Email,
	}).Info("顾客注册成功")

	return &RegisterResponse{
		CustomerID: c.ID,
		Email:      c.Email,
		Name:       c.Name,
	}, nil
}
