package handler

import (
	"errors"
	"net/http"

	"github.com/corpsite/internal/service"
	"github.com/gin-gonic/gin"
)

func respondMaterialError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrMaterialNotFound):
		respondError(c, http.StatusNotFound, "资料不存在")
	case errors.Is(err, service.ErrInvalidInput):
		respondInvalid(c, err)
	default:
		respondServerError(c, err, fallback)
	}
}

// PublicMaterials 返回可下载的资料
func (a *API) PublicMaterials(c *gin.Context) {
	result, err := a.materials.List(parsePublicListFilter(c))
	if err != nil {
		respondServerError(c, err, "获取资料列表失败")
		return
	}
	respondOK(c, result)
}

// DownloadMaterial 记录下载次数后 302 跳转到文件地址
func (a *API) DownloadMaterial(c *gin.Context) {
	item, err := a.materials.RecordDownload(c.Param("id"))
	if err != nil {
		respondMaterialError(c, err, "下载资料失败")
		return
	}
	c.Redirect(http.StatusFound, item.FileURL)
}

// ListMaterials 后台资料列表
func (a *API) ListMaterials(c *gin.Context) {
	result, err := a.materials.List(parseListFilter(c))
	if err != nil {
		respondServerError(c, err, "获取资料列表失败")
		return
	}
	respondOK(c, result)
}

// GetMaterial 后台资料详情
func (a *API) GetMaterial(c *gin.Context) {
	item, err := a.materials.Get(c.Param("id"))
	if err != nil {
		respondMaterialError(c, err, "获取资料失败")
		return
	}
	respondOK(c, item)
}

// CreateMaterial 新增资料，fileUrl 通常来自上传接口。
func (a *API) CreateMaterial(c *gin.Context) {
	var input service.MaterialInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := a.materials.Create(input)
	if err != nil {
		respondMaterialError(c, err, "创建资料失败")
		return
	}
	respondCreated(c, item)
}

// UpdateMaterial 更新资料
func (a *API) UpdateMaterial(c *gin.Context) {
	var input service.MaterialInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := a.materials.Update(c.Param("id"), input)
	if err != nil {
		respondMaterialError(c, err, "更新资料失败")
		return
	}
	respondOK(c, item)
}

// DeleteMaterial 下线或删除资料
func (a *API) DeleteMaterial(c *gin.Context) {
	if err := a.materials.Delete(c.Param("id"), permanentDelete(c)); err != nil {
		respondMaterialError(c, err, "删除资料失败")
		return
	}
	respondOK(c, nil)
}
