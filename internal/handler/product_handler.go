package handler

import (
	"errors"
	"net/http"

	"github.com/corpsite/internal/db"
	"github.com/corpsite/internal/service"
	"github.com/gin-gonic/gin"
)

const relatedCasesLimit = 6

type productDetail struct {
	db.Product
	ContentHTML  string               `json:"contentHtml"`
	RelatedCases []db.EngineeringCase `json:"relatedCases"`
}

func respondProductError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, http.StatusNotFound, "产品不存在")
	case errors.Is(err, service.ErrProductNameTaken):
		respondError(c, http.StatusConflict, "产品名称已存在")
	case errors.Is(err, service.ErrInvalidInput):
		respondInvalid(c, err)
	default:
		respondServerError(c, err, fallback)
	}
}

// PublicProducts 返回启用的产品
func (a *API) PublicProducts(c *gin.Context) {
	result, err := a.products.List(parsePublicListFilter(c))
	if err != nil {
		respondServerError(c, err, "获取产品列表失败")
		return
	}
	respondOK(c, result)
}

// PublicProductDetail 返回产品详情、渲染后的描述以及相关案例
func (a *API) PublicProductDetail(c *gin.Context) {
	item, err := a.products.Get(c.Param("id"))
	if err == nil && !item.IsActive {
		err = service.ErrProductNotFound
	}
	if err != nil {
		respondProductError(c, err, "获取产品失败")
		return
	}

	related, err := a.cases.List(service.ListFilter{
		ProductID: item.ID,
		Active:    service.BoolPtr(true),
		Public:    true,
		PageSize:  relatedCasesLimit,
	})
	if err != nil {
		respondServerError(c, err, "获取相关案例失败")
		return
	}

	respondOK(c, productDetail{
		Product:      *item,
		ContentHTML:  renderMarkdown(item.Description),
		RelatedCases: related.Items,
	})
}

// ProductCategories 返回启用产品的分类
func (a *API) ProductCategories(c *gin.Context) {
	categories, err := a.products.Categories()
	if err != nil {
		respondServerError(c, err, "获取产品分类失败")
		return
	}
	respondOK(c, categories)
}

// ListProducts 后台产品列表
func (a *API) ListProducts(c *gin.Context) {
	result, err := a.products.List(parseListFilter(c))
	if err != nil {
		respondServerError(c, err, "获取产品列表失败")
		return
	}
	respondOK(c, result)
}

// GetProduct 后台产品详情
func (a *API) GetProduct(c *gin.Context) {
	item, err := a.products.Get(c.Param("id"))
	if err != nil {
		respondProductError(c, err, "获取产品失败")
		return
	}
	respondOK(c, item)
}

// CreateProduct 新增产品
func (a *API) CreateProduct(c *gin.Context) {
	var input service.ProductInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := a.products.Create(input)
	if err != nil {
		respondProductError(c, err, "创建产品失败")
		return
	}
	respondCreated(c, item)
}

// UpdateProduct 更新产品
func (a *API) UpdateProduct(c *gin.Context) {
	var input service.ProductInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := a.products.Update(c.Param("id"), input)
	if err != nil {
		respondProductError(c, err, "更新产品失败")
		return
	}
	respondOK(c, item)
}

// DeleteProduct 下架或删除产品
func (a *API) DeleteProduct(c *gin.Context) {
	if err := a.products.Delete(c.Param("id"), permanentDelete(c)); err != nil {
		respondProductError(c, err, "删除产品失败")
		return
	}
	respondOK(c, nil)
}
