package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/corpsite/internal/auth"
	"github.com/corpsite/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthCookieName 是浏览器端保存令牌的 cookie 名称。
const AuthCookieName = "auth-token"

const claimsContextKey = "auth.claims"

// AuthRequired 校验 Bearer 令牌或 auth-token cookie，失败返回 401。
// 每次请求都会重新读取账号：已删除返回 401，已停用返回 403，角色以数据库为准。
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := a.tokens.Parse(tokenFromRequest(c))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenMissing):
				respondError(c, http.StatusUnauthorized, "未登录")
			case errors.Is(err, auth.ErrTokenExpired):
				respondError(c, http.StatusUnauthorized, "登录已过期，请重新登录")
			default:
				respondError(c, http.StatusUnauthorized, "无效的登录凭证")
			}
			return
		}

		user, err := a.users.Get(claims.UserID)
		if err != nil {
			if errors.Is(err, service.ErrAdminUserNotFound) {
				respondError(c, http.StatusUnauthorized, "账号不存在")
				return
			}
			respondServerError(c, err, "校验登录状态失败")
			return
		}
		if !user.IsActive {
			respondError(c, http.StatusForbidden, "账号已停用")
			return
		}
		claims.Username = user.Username
		claims.Email = user.Email
		claims.Role = user.Role

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireRole 要求当前用户具备任一角色，否则返回 403。需挂在 AuthRequired 之后。
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, "未登录")
			return
		}
		if !claims.HasRole(roles...) {
			respondError(c, http.StatusForbidden, "没有访问权限")
			return
		}
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie
	}
	return ""
}

func currentClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok && claims != nil
}
