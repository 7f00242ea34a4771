package handler

import (
	"errors"
	"net/http"

	"github.com/corpsite/internal/service"
	"github.com/gin-gonic/gin"
)

func respondUserError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrAdminUserNotFound):
		respondError(c, http.StatusNotFound, "账号不存在")
	case errors.Is(err, service.ErrUsernameTaken):
		respondError(c, http.StatusConflict, "用户名已存在")
	case errors.Is(err, service.ErrSelfModification):
		respondError(c, http.StatusBadRequest, "不能删除、停用或降级当前登录的账号")
	case errors.Is(err, service.ErrPasswordTooShort):
		respondError(c, http.StatusBadRequest, "密码至少 8 位")
	case errors.Is(err, service.ErrInvalidInput):
		respondInvalid(c, err)
	default:
		respondServerError(c, err, fallback)
	}
}

// ListUsers 获取后台账号列表，category 参数按角色过滤。
func (a *API) ListUsers(c *gin.Context) {
	result, err := a.users.List(parseListFilter(c))
	if err != nil {
		respondServerError(c, err, "获取账号列表失败")
		return
	}
	respondOK(c, result)
}

// GetUser 获取单个账号
func (a *API) GetUser(c *gin.Context) {
	user, err := a.users.Get(c.Param("id"))
	if err != nil {
		respondUserError(c, err, "获取账号失败")
		return
	}
	respondOK(c, user)
}

// CreateUser 创建后台账号
func (a *API) CreateUser(c *gin.Context) {
	var input service.AdminUserInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := a.users.Create(input)
	if err != nil {
		respondUserError(c, err, "创建账号失败")
		return
	}
	respondCreated(c, user)
}

// UpdateUser 更新后台账号
func (a *API) UpdateUser(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "未登录")
		return
	}
	var input service.AdminUserInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := a.users.Update(claims.UserID, c.Param("id"), input)
	if err != nil {
		respondUserError(c, err, "更新账号失败")
		return
	}
	respondOK(c, user)
}

// DeleteUser 停用或删除后台账号
func (a *API) DeleteUser(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "未登录")
		return
	}
	if err := a.users.Delete(claims.UserID, c.Param("id"), permanentDelete(c)); err != nil {
		respondUserError(c, err, "删除账号失败")
		return
	}
	respondOK(c, nil)
}
