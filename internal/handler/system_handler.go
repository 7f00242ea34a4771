package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ping 存活探针
func (a *API) Ping(c *gin.Context) {
	respondOK(c, gin.H{"message": "pong"})
}

// HealthCheck 检查数据库连接，供负载均衡与监控使用。
func (a *API) HealthCheck(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err != nil {
		respondServerError(c, err, "database handle unavailable")
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusServiceUnavailable, "database unreachable")
		return
	}

	respondOK(c, gin.H{
		"status":   "ok",
		"database": "up",
	})
}

// Dashboard 返回后台首页的统计数据
func (a *API) Dashboard(c *gin.Context) {
	summary, err := a.dashboard.Summary()
	if err != nil {
		respondServerError(c, err, "获取统计数据失败")
		return
	}
	respondOK(c, summary)
}
