package handler

import (
	"github.com/gin-gonic/gin"

	apprecommend "github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/application/recommend"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/interface/http/dto"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/interface/http/middleware"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/response"
)

// RecommendHandler 推荐HTTP处理器
type RecommendHandler struct {
	recommendUseCase *apprecommend.RecommendUseCase
}

// NewRecommendHandler 创建推荐处理器
func NewRecommendHandler(recommendUseCase *apprecommend.RecommendUseCase) *RecommendHandler {
	return &RecommendHandler{recommendUseCase: recommendUseCase}
}

// Recommend 个性化推荐
// @Summary      个性化推荐
// @Description  基于购买历史按分类+作者交集推荐，排除已购商品，无购买历史返回空列表
// @Tags         推荐模块
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "返回数量上限（默认10）"
// @Success      200 {object} response.Response{data=[]recommend.RecommendedProduct}
// @Router       /recommendations [get]
func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req dto.RecommendRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	customerID := middleware.MustGetCustomerID(c)

	result, err := h.recommendUseCase.Execute(c.Request.Context(), customerID, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
