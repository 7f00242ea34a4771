package handler

import (
	"errors"
	"net/http"

	"github.com/corpsite/internal/db"
	"github.com/corpsite/internal/service"
	"github.com/gin-gonic/gin"
)

type caseDetail struct {
	db.EngineeringCase
	ContentHTML string `json:"contentHtml"`
}

func respondCaseError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrCaseNotFound):
		respondError(c, http.StatusNotFound, "案例不存在")
	case errors.Is(err, service.ErrInvalidInput):
		respondInvalid(c, err)
	default:
		respondServerError(c, err, fallback)
	}
}

// PublicCases 返回启用的工程案例，productId 参数按产品过滤。
func (a *API) PublicCases(c *gin.Context) {
	result, err := a.cases.List(parsePublicListFilter(c))
	if err != nil {
		respondServerError(c, err, "获取案例列表失败")
		return
	}
	respondOK(c, result)
}

// PublicCaseDetail 返回案例详情
func (a *API) PublicCaseDetail(c *gin.Context) {
	item, err := a.cases.Get(c.Param("id"))
	if err == nil && !item.IsActive {
		err = service.ErrCaseNotFound
	}
	if err != nil {
		respondCaseError(c, err, "获取案例失败")
		return
	}
	if item.Product != nil && !item.Product.IsActive {
		item.Product = nil
	}
	respondOK(c, caseDetail{EngineeringCase: *item, ContentHTML: renderMarkdown(item.Content)})
}

// ListCases 后台案例列表
func (a *API) ListCases(c *gin.Context) {
	result, err := a.cases.List(parseListFilter(c))
	if err != nil {
		respondServerError(c, err, "获取案例列表失败")
		return
	}
	respondOK(c, result)
}

// GetCase 后台案例详情
func (a *API) GetCase(c *gin.Context) {
	item, err := a.cases.Get(c.Param("id"))
	if err != nil {
		respondCaseError(c, err, "获取案例失败")
		return
	}
	respondOK(c, item)
}

// CreateCase 新增案例
func (a *API) CreateCase(c *gin.Context) {
	var input service.CaseInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := a.cases.Create(input)
	if err != nil {
		respondCaseError(c, err, "创建案例失败")
		return
	}
	respondCreated(c, item)
}

// UpdateCase 更新案例
func (a *API) UpdateCase(c *gin.Context) {
	var input service.CaseInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := a.cases.Update(c.Param("id"), input)
	if err != nil {
		respondCaseError(c, err, "更新案例失败")
		return
	}
	respondOK(c, item)
}

// DeleteCase 下线或删除案例
func (a *API) DeleteCase(c *gin.Context) {
	if err := a.cases.Delete(c.Param("id"), permanentDelete(c)); err != nil {
		respondCaseError(c, err, "删除案例失败")
		return
	}
	respondOK(c, nil)
}
