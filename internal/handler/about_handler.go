package handler

import (
	"errors"
	"net/http"

	"github.com/corpsite/internal/db"
	"github.com/corpsite/internal/service"
	"github.com/gin-gonic/gin"
)

type aboutView struct {
	db.About
	ContentHTML string `json:"contentHtml"`
}

func newAboutView(item db.About) aboutView {
	return aboutView{About: item, ContentHTML: renderMarkdown(item.Content)}
}

func respondAboutError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrAboutNotFound):
		respondError(c, http.StatusNotFound, "内容不存在")
	case errors.Is(err, service.ErrInvalidInput):
		respondInvalid(c, err)
	default:
		respondServerError(c, err, fallback)
	}
}

// PublicAbout 返回启用的关于我们段落，附带渲染后的 HTML。
func (a *API) PublicAbout(c *gin.Context) {
	result, err := a.about.List(parsePublicListFilter(c))
	if err != nil {
		respondServerError(c, err, "获取关于我们失败")
		return
	}

	views := make([]aboutView, 0, len(result.Items))
	for _, item := range result.Items {
		views = append(views, newAboutView(item))
	}
	respondOK(c, service.ListResult[aboutView]{
		Items:      views,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	})
}

// PublicAboutDetail 返回单个启用段落
func (a *API) PublicAboutDetail(c *gin.Context) {
	item, err := a.about.Get(c.Param("id"))
	if err == nil && !item.IsActive {
		err = service.ErrAboutNotFound
	}
	if err != nil {
		respondAboutError(c, err, "获取内容失败")
		return
	}
	respondOK(c, newAboutView(*item))
}

// ListAbout 后台列表，包含停用段落
func (a *API) ListAbout(c *gin.Context) {
	result, err := a.about.List(parseListFilter(c))
	if err != nil {
		respondServerError(c, err, "获取关于我们失败")
		return
	}
	respondOK(c, result)
}

// GetAbout 后台详情
func (a *API) GetAbout(c *gin.Context) {
	item, err := a.about.Get(c.Param("id"))
	if err != nil {
		respondAboutError(c, err, "获取内容失败")
		return
	}
	respondOK(c, item)
}

// CreateAbout 新增段落
func (a *API) CreateAbout(c *gin.Context) {
	var input service.AboutInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := a.about.Create(input)
	if err != nil {
		respondAboutError(c, err, "创建内容失败")
		return
	}
	respondCreated(c, item)
}

// UpdateAbout 更新段落
func (a *API) UpdateAbout(c *gin.Context) {
	var input service.AboutInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := a.about.Update(c.Param("id"), input)
	if err != nil {
		respondAboutError(c, err, "更新内容失败")
		return
	}
	respondOK(c, item)
}

// DeleteAbout 停用或删除段落
func (a *API) DeleteAbout(c *gin.Context) {
	if err := a.about.Delete(c.Param("id"), permanentDelete(c)); err != nil {
		respondAboutError(c, err, "删除内容失败")
		return
	}
	respondOK(c, nil)
}
