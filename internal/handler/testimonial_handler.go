package handler

import (
	"errors"
	"net/http"

	"github.com/corpsite/internal/service"
	"github.com/gin-gonic/gin"
)

func respondTestimonialError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrTestimonialNotFound):
		respondError(c, http.StatusNotFound, "评价不存在")
	case errors.Is(err, service.ErrTestimonialRating):
		respondError(c, http.StatusBadRequest, "评分必须在 1 到 5 之间")
	case errors.Is(err, service.ErrInvalidInput):
		respondInvalid(c, err)
	default:
		respondServerError(c, err, fallback)
	}
}

// PublicTestimonials 返回启用的客户评价
func (a *API) PublicTestimonials(c *gin.Context) {
	result, err := a.testimonials.List(parsePublicListFilter(c))
	if err != nil {
		respondServerError(c, err, "获取客户评价失败")
		return
	}
	respondOK(c, result)
}

// ListTestimonials 后台评价列表
func (a *API) ListTestimonials(c *gin.Context) {
	result, err := a.testimonials.List(parseListFilter(c))
	if err != nil {
		respondServerError(c, err, "获取客户评价失败")
		return
	}
	respondOK(c, result)
}

// GetTestimonial 后台评价详情
func (a *API) GetTestimonial(c *gin.Context) {
	item, err := a.testimonials.Get(c.Param("id"))
	if err != nil {
		respondTestimonialError(c, err, "获取客户评价失败")
		return
	}
	respondOK(c, item)
}

// CreateTestimonial 新增评价
func (a *API) CreateTestimonial(c *gin.Context) {
	var input service.TestimonialInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := a.testimonials.Create(input)
	if err != nil {
		respondTestimonialError(c, err, "创建客户评价失败")
		return
	}
	respondCreated(c, item)
}

// UpdateTestimonial 更新评价
func (a *API) UpdateTestimonial(c *gin.Context) {
	var input service.TestimonialInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := a.testimonials.Update(c.Param("id"), input)
	if err != nil {
		respondTestimonialError(c, err, "更新客户评价失败")
		return
	}
	respondOK(c, item)
}

// DeleteTestimonial 隐藏或删除评价
func (a *API) DeleteTestimonial(c *gin.Context) {
	if err := a.testimonials.Delete(c.Param("id"), permanentDelete(c)); err != nil {
		respondTestimonialError(c, err, "删除客户评价失败")
		return
	}
	respondOK(c, nil)
}
