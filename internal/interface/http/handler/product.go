package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appcatalog "github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/application/catalog"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/interface/http/dto"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/response"
)

// ProductHandler 商品HTTP处理器
type ProductHandler struct {
	productUseCase *appcatalog.ProductUseCase
}

// NewProductHandler 创建商品处理器
func NewProductHandler(productUseCase *appcatalog.ProductUseCase) *ProductHandler {
	return &ProductHandler{productUseCase: productUseCase}
}

// Publish 发布商品
// @Summary      发布商品
// @Tags         商品模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PublishProductRequest true "商品信息"
// @Success      200 {object} response.Response{data=dto.ProductResponse} "发布成功"
// @Failure      200 {object} response.Response "分类不存在/参数错误"
// @Router       /products [post]
func (h *ProductHandler) Publish(c *gin.Context) {
	var req dto.PublishProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	result, err := h.productUseCase.Publish(c.Request.Context(), appcatalog.PublishProductRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		AuthorID:    req.AuthorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toProductResponse(result))
}

// Get 商品详情
// @Summary      商品详情
// @Tags         商品模块
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response{data=dto.ProductResponse}
// @Failure      200 {object} response.Response "商品不存在"
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, 40900, "商品ID不合法")
		return
	}

	result, err := h.productUseCase.Get(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toProductResponse(result))
}

// Search 商品搜索
// @Summary      商品搜索
// @Description  按关键词匹配名称或描述，结果按商品ID升序
// @Tags         商品模块
// @Produce      json
// @Param        keyword query string false "搜索关键词"
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /products [get]
func (h *ProductHandler) Search(c *gin.Context) {
	var req dto.SearchProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	result, err := h.productUseCase.Search(c.Request.Context(), appcatalog.SearchRequest{
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.ProductResponse, len(result.List))
	for i, p := range result.List {
		list[i] = *toProductResponse(&p)
	}
	response.SuccessWithPage(c, list, result.Total, result.Page, result.PageSize)
}

// CreateCategory 创建分类
// @Summary      创建分类
// @Tags         商品模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCategoryRequest true "分类信息"
// @Success      200 {object} response.Response{data=dto.CategoryResponse}
// @Failure      200 {object} response.Response "分类名已存在"
// @Router       /categories [post]
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	category, err := h.productUseCase.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.CategoryResponse{ID: category.ID, Name: category.Name})
}

// ListCategories 分类列表
// @Summary      分类列表
// @Tags         商品模块
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.CategoryResponse}
// @Router       /categories [get]
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.productUseCase.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.CategoryResponse, len(categories))
	for i, cat := range categories {
		list[i] = dto.CategoryResponse{ID: cat.ID, Name: cat.Name}
	}
	response.Success(c, list)
}

// CreateAuthor 创建作者
// @Summary      创建作者
// @Tags         商品模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateAuthorRequest true "作者信息"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Router       /authors [post]
func (h *ProductHandler) CreateAuthor(c *gin.Context) {
	var req dto.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	author, err := h.productUseCase.CreateAuthor(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.AuthorResponse{ID: author.ID, Name: author.Name})
}

func toProductResponse(p *appcatalog.ProductDetail) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		PriceYuan:   p.PriceYuan,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		AuthorID:    p.AuthorID,
	}
}
