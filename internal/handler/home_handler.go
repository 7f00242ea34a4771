package handler

import (
	"errors"
	"net/http"

	"github.com/corpsite/internal/service"
	"github.com/gin-gonic/gin"
)

func respondHomeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrHomeBlockNotFound):
		respondError(c, http.StatusNotFound, "首页区块不存在")
	case errors.Is(err, service.ErrInvalidInput):
		respondInvalid(c, err)
	default:
		respondServerError(c, err, fallback)
	}
}

// PublicHome 返回首页聚合数据
func (a *API) PublicHome(c *gin.Context) {
	overview, err := a.home.Overview()
	if err != nil {
		respondServerError(c, err, "获取首页数据失败")
		return
	}
	respondOK(c, overview)
}

// ListHomeBlocks 后台区块列表，category 参数按区块类型过滤。
func (a *API) ListHomeBlocks(c *gin.Context) {
	filter := parseListFilter(c)
	if section := c.Query("section"); section != "" {
		filter.Category = section
	}
	result, err := a.home.List(filter)
	if err != nil {
		respondServerError(c, err, "获取首页区块失败")
		return
	}
	respondOK(c, result)
}

// GetHomeBlock 获取单个区块
func (a *API) GetHomeBlock(c *gin.Context) {
	item, err := a.home.Get(c.Param("id"))
	if err != nil {
		respondHomeError(c, err, "获取首页区块失败")
		return
	}
	respondOK(c, item)
}

// CreateHomeBlock 新增区块
func (a *API) CreateHomeBlock(c *gin.Context) {
	var input service.HomeInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := a.home.Create(input)
	if err != nil {
		respondHomeError(c, err, "创建首页区块失败")
		return
	}
	respondCreated(c, item)
}

// UpdateHomeBlock 更新区块
func (a *API) UpdateHomeBlock(c *gin.Context) {
	var input service.HomeInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := a.home.Update(c.Param("id"), input)
	if err != nil {
		respondHomeError(c, err, "更新首页区块失败")
		return
	}
	respondOK(c, item)
}

// DeleteHomeBlock 停用或删除区块
func (a *API) DeleteHomeBlock(c *gin.Context) {
	if err := a.home.Delete(c.Param("id"), permanentDelete(c)); err != nil {
		respondHomeError(c, err, "删除首页区块失败")
		return
	}
	respondOK(c, nil)
}
