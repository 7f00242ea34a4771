package handler

import (
	"errors"
	"net/http"

	"github.com/corpsite/internal/db"
	"github.com/corpsite/internal/service"
	"github.com/gin-gonic/gin"
)

type newsDetail struct {
	db.News
	ContentHTML string `json:"contentHtml"`
}

func respondNewsError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNewsNotFound):
		respondError(c, http.StatusNotFound, "新闻不存在")
	case errors.Is(err, service.ErrInvalidInput):
		respondInvalid(c, err)
	default:
		respondServerError(c, err, fallback)
	}
}

// PublicNews 返回已发布的新闻，最新的在前。
func (a *API) PublicNews(c *gin.Context) {
	result, err := a.news.List(parsePublicListFilter(c))
	if err != nil {
		respondServerError(c, err, "获取新闻列表失败")
		return
	}
	respondOK(c, result)
}

// PublicNewsDetail 返回新闻详情并累加浏览次数
func (a *API) PublicNewsDetail(c *gin.Context) {
	item, err := a.news.View(c.Param("id"))
	if err != nil {
		respondNewsError(c, err, "获取新闻失败")
		return
	}
	respondOK(c, newsDetail{News: *item, ContentHTML: renderMarkdown(item.Content)})
}

// ListNews 后台新闻列表
func (a *API) ListNews(c *gin.Context) {
	result, err := a.news.List(parseListFilter(c))
	if err != nil {
		respondServerError(c, err, "获取新闻列表失败")
		return
	}
	respondOK(c, result)
}

// GetNews 后台新闻详情，不计浏览次数
func (a *API) GetNews(c *gin.Context) {
	item, err := a.news.Get(c.Param("id"))
	if err != nil {
		respondNewsError(c, err, "获取新闻失败")
		return
	}
	respondOK(c, item)
}

// CreateNews 发布新闻
func (a *API) CreateNews(c *gin.Context) {
	var input service.NewsInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := a.news.Create(input)
	if err != nil {
		respondNewsError(c, err, "创建新闻失败")
		return
	}
	respondCreated(c, item)
}

// UpdateNews 更新新闻
func (a *API) UpdateNews(c *gin.Context) {
	var input service.NewsInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := a.news.Update(c.Param("id"), input)
	if err != nil {
		respondNewsError(c, err, "更新新闻失败")
		return
	}
	respondOK(c, item)
}

// DeleteNews 下线或删除新闻
func (a *API) DeleteNews(c *gin.Context) {
	if err := a.news.Delete(c.Param("id"), permanentDelete(c)); err != nil {
		respondNewsError(c, err, "删除新闻失败")
		return
	}
	respondOK(c, nil)
}
