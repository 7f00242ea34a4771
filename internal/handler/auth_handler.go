package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/corpsite/internal/auth"
	"github.com/corpsite/internal/db"
	"github.com/corpsite/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type loginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	User      *db.AdminUser `json:"user"`
}

// Login 校验账号密码，签发令牌并写入 auth-token cookie。
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := a.users.Authenticate(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, "用户名或密码错误")
		case errors.Is(err, service.ErrAdminUserDisabled):
			respondError(c, http.StatusForbidden, "账号已停用")
		default:
			respondServerError(c, err, "登录失败")
		}
		return
	}

	token, expiresAt, err := a.tokens.Issue(auth.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
	if err != nil {
		respondServerError(c, err, "签发令牌失败")
		return
	}

	a.setAuthCookie(c, token, int(a.tokens.TTL().Seconds()))
	a.logger.Info("admin login", zap.String("username", user.Username), zap.String("ip", c.ClientIP()))
	respondOK(c, loginResponse{Token: token, ExpiresAt: expiresAt, User: user})
}

// Logout 清除 auth-token cookie。令牌本身无状态，到期前仍可通过 Bearer 使用。
func (a *API) Logout(c *gin.Context) {
	a.setAuthCookie(c, "", -1)
	respondOK(c, nil)
}

// Me 返回当前登录的账号。
func (a *API) Me(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "未登录")
		return
	}

	user, err := a.users.Get(claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrAdminUserNotFound) {
			respondError(c, http.StatusUnauthorized, "账号不存在")
			return
		}
		respondServerError(c, err, "获取账号信息失败")
		return
	}
	if !user.IsActive {
		respondError(c, http.StatusForbidden, "账号已停用")
		return
	}
	respondOK(c, user)
}

// ChangePassword 修改当前账号密码。
func (a *API) ChangePassword(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "未登录")
		return
	}

	var req changePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := a.users.ChangePassword(claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, http.StatusBadRequest, "原密码错误")
		case errors.Is(err, service.ErrPasswordTooShort):
			respondError(c, http.StatusBadRequest, "新密码至少 8 位")
		case errors.Is(err, service.ErrAdminUserNotFound):
			respondError(c, http.StatusUnauthorized, "账号不存在")
		default:
			respondServerError(c, err, "修改密码失败")
		}
		return
	}
	respondOK(c, nil)
}

func (a *API) setAuthCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AuthCookieName, token, maxAge, "/", "", a.cookieSecure, true)
}
