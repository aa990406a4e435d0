package customer

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/customer"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/infrastructure/persistence/redis"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/jwt"
)

// LoginUseCase 顾客登录用例
// 登录成功后生成JWT双Token，并在Redis中记录会话
type LoginUseCase struct {
	service      customer.Service
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
	logger       *logrus.Logger
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(service customer.Service, jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore, logger *logrus.Logger) *LoginUseCase {
	return &LoginUseCase{
		service:      service,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		logger:       logger,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
	ClientIP string
}

// LoginResponse 登录响应
type LoginResponse struct {
	CustomerID   uint   `json:"customer_id"`
	Name         string `json:"name"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	c, err := uc.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		uc.logger.WithField("email", req.Email).Warn("登录失败")
		return nil, err
	}

	tokenPair, err := uc.jwtManager.GenerateToken(c.ID, c.Email, c.Name)
	if err != nil {
		return nil, err
	}

	// 会话记录失败不阻塞登录（Redis不可用时核心流程仍可用）
	if uc.sessionStore != nil {
		sessionData := map[string]interface{}{
			"login_at":  time.Now().Format(time.RFC3339),
			"client_ip": req.ClientIP,
		}
		if err := uc.sessionStore.SaveSession(ctx, c.ID, sessionData, 7*24*time.Hour); err != nil {
			uc.logger.WithError(err).WithField("customer_id", c.ID).Warn("保存会话失败")
		}
	}

	uc.logger.WithFields(logrus.Fields{
		"customer_id": c.ID,
		"client_ip":   req.ClientIP,
	}).Info("顾客登录成功")

	return &LoginResponse{
		CustomerID:   c.ID,
		Name:         c.Name,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 顾客登出用例
// 删除会话并将Access Token加入黑名单（JWT主动失效）
type LogoutUseCase struct {
	sessionStore *redis.SessionStore
	logger       *logrus.Logger
	tokenTTL     time.Duration
}

// NewLogoutUseCase 创建登出用例
// tokenTTL应与Access Token有效期一致（黑名单保留到Token自然过期即可）
func NewLogoutUseCase(sessionStore *redis.SessionStore, logger *logrus.Logger, tokenTTL time.Duration) *LogoutUseCase {
	return &LogoutUseCase{
		sessionStore: sessionStore,
		logger:       logger,
		tokenTTL:     tokenTTL,
	}
}

// Execute 执行登出
func (uc *LogoutUseCase) Execute(ctx context.Context, customerID uint, token string) error {
	if uc.sessionStore == nil {
		return nil
	}

	if err := uc.sessionStore.DeleteSession(ctx, customerID); err != nil {
		return err
	}

	if err := uc.sessionStore.AddToBlacklist(ctx, token, uc.tokenTTL); err != nil {
		return err
	}

	uc.logger.WithField("customer_id", customerID).Info("顾客已登出")
	return nil
}
