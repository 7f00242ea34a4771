package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/corpsite/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Envelope 是所有 JSON 接口的统一返回结构，code 为 0 表示成功，否则等于 HTTP 状态码。
type Envelope struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Code: 0, Msg: "ok", Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Code: 0, Msg: "created", Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Code: status, Msg: message, Data: nil})
}

// respondServerError 记录原始错误供访问日志输出，并返回通用提示。
func respondServerError(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	respondError(c, http.StatusInternalServerError, message)
}

// respondInvalid 返回 400，并把 service.ErrInvalidInput 包装的原因透出。
func respondInvalid(c *gin.Context, err error) {
	msg := strings.TrimPrefix(err.Error(), service.ErrInvalidInput.Error()+": ")
	respondError(c, http.StatusBadRequest, msg)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return false
	}
	return true
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			if fe.Param() != "" {
				fields = append(fields, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
				continue
			}
			fields = append(fields, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
		return "参数校验失败 (" + strings.Join(fields, "; ") + ")"
	}
	return "请求参数格式错误"
}

// parseListFilter 读取列表接口的通用查询参数。
func parseListFilter(c *gin.Context) service.ListFilter {
	filter := service.ListFilter{
		Keyword:   strings.TrimSpace(c.Query("keyword")),
		Category:  strings.TrimSpace(c.Query("category")),
		ProductID: strings.TrimSpace(c.Query("productId")),
		Active:    parseBoolQuery(c, "active"),
		Featured:  parseBoolQuery(c, "featured"),
	}
	if filter.Keyword == "" {
		filter.Keyword = strings.TrimSpace(c.Query("q"))
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.Query("pageSize")); err == nil {
		filter.PageSize = size
	}
	return filter
}

// parsePublicListFilter 与 parseListFilter 相同，但只返回启用的记录。
func parsePublicListFilter(c *gin.Context) service.ListFilter {
	filter := parseListFilter(c)
	filter.Active = service.BoolPtr(true)
	filter.Public = true
	return filter
}

func parseBoolQuery(c *gin.Context, key string) *bool {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

func permanentDelete(c *gin.Context) bool {
	value := parseBoolQuery(c, "permanent")
	return value != nil && *value
}
