package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appcustomer "github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/application/customer"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/interface/http/dto"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/interface/http/middleware"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/response"
)

// CustomerHandler 顾客HTTP处理器
type CustomerHandler struct {
	registerUseCase *appcustomer.RegisterUseCase
	loginUseCase    *appcustomer.LoginUseCase
	logoutUseCase   *appcustomer.LogoutUseCase
	historyUseCase  *appcustomer.PurchaseHistoryUseCase
}

// NewCustomerHandler 创建顾客处理器
func NewCustomerHandler(
	registerUseCase *appcustomer.RegisterUseCase,
	loginUseCase *appcustomer.LoginUseCase,
	logoutUseCase *appcustomer.LogoutUseCase,
	historyUseCase *appcustomer.PurchaseHistoryUseCase,
) *CustomerHandler {
	return &CustomerHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		logoutUseCase:   logoutUseCase,
		historyUseCase:  historyUseCase,
	}
}

// Register 顾客注册
// @Summary      顾客注册
// @Tags         顾客模块
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      200 {object} response.Response{data=dto.RegisterResponse} "注册成功"
// @Failure      200 {object} response.Response "邮箱已存在/参数错误"
// @Router       /customers/register [post]
func (h *CustomerHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appcustomer.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.RegisterResponse{
		CustomerID: result.CustomerID,
		Email:      result.Email,
		Name:       result.Name,
	})
}

// Login 顾客登录
// @Summary      顾客登录
// @Tags         顾客模块
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=dto.LoginResponse} "登录成功"
// @Failure      200 {object} response.Response "顾客不存在/密码错误"
// @Router       /customers/login [post]
func (h *CustomerHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appcustomer.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.LoginResponse{
		CustomerID:   result.CustomerID,
		Name:         result.Name,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	})
}

// Logout 顾客登出
// @Summary      顾客登出
// @Tags         顾客模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "登出成功"
// @Router       /customers/logout [post]
func (h *CustomerHandler) Logout(c *gin.Context) {
	customerID := middleware.MustGetCustomerID(c)
	token := middleware.GetToken(c)

	if err := h.logoutUseCase.Execute(c.Request.Context(), customerID, token); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// PurchaseHistory 我的购买历史
// @Summary      我的购买历史
// @Description  读取销售历史快照（按下单时间降序）
// @Tags         顾客模块
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /customers/history [get]
func (h *CustomerHandler) PurchaseHistory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	customerID := middleware.MustGetCustomerID(c)

	result, err := h.historyUseCase.Execute(c.Request.Context(), customerID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.List, result.Total, result.Page, result.PageSize)
}
