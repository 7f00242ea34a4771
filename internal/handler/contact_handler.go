package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/corpsite/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const contactSubmittedAtKey = "contact_submitted_at"

func respondContactError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrContactNotFound):
		respondError(c, http.StatusNotFound, "联系方式不存在")
	case errors.Is(err, service.ErrContactMessageNotFound):
		respondError(c, http.StatusNotFound, "留言不存在")
	case errors.Is(err, service.ErrInvalidInput):
		respondInvalid(c, err)
	default:
		respondServerError(c, err, fallback)
	}
}

// PublicContacts 返回启用的联系方式
func (a *API) PublicContacts(c *gin.Context) {
	filter := parsePublicListFilter(c)
	if filter.PageSize == 0 {
		filter.PageSize = 100
	}
	result, err := a.contact.List(filter)
	if err != nil {
		respondServerError(c, err, "获取联系方式失败")
		return
	}
	respondOK(c, result)
}

// SubmitContactMessage 保存访客留言。同一会话在 contactThrottle 内只能提交一次。
func (a *API) SubmitContactMessage(c *gin.Context) {
	session := sessions.Default(c)
	now := a.now()
	if a.contactThrottle > 0 {
		if last, ok := session.Get(contactSubmittedAtKey).(int64); ok {
			if now.Sub(time.UnixMilli(last)) < a.contactThrottle {
				respondError(c, http.StatusTooManyRequests, "提交过于频繁，请稍后再试")
				return
			}
		}
	}

	var input service.ContactMessageInput
	if !bindJSON(c, &input) {
		return
	}
	input.IP = c.ClientIP()

	message, err := a.contact.SubmitMessage(input)
	if err != nil {
		respondContactError(c, err, "提交留言失败")
		return
	}

	session.Set(contactSubmittedAtKey, now.UnixMilli())
	if err := session.Save(); err != nil {
		a.logger.Warn("save contact session failed", zap.Error(err))
	}
	respondCreated(c, gin.H{"id": message.ID})
}

// ListContacts 后台联系方式列表，category 参数按类型过滤。
func (a *API) ListContacts(c *gin.Context) {
	result, err := a.contact.List(parseListFilter(c))
	if err != nil {
		respondServerError(c, err, "获取联系方式失败")
		return
	}
	respondOK(c, result)
}

// GetContact 获取单个联系方式
func (a *API) GetContact(c *gin.Context) {
	item, err := a.contact.Get(c.Param("id"))
	if err != nil {
		respondContactError(c, err, "获取联系方式失败")
		return
	}
	respondOK(c, item)
}

// CreateContact 新增联系方式
func (a *API) CreateContact(c *gin.Context) {
	var input service.ContactInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := a.contact.Create(input)
	if err != nil {
		respondContactError(c, err, "创建联系方式失败")
		return
	}
	respondCreated(c, item)
}

// UpdateContact 更新联系方式
func (a *API) UpdateContact(c *gin.Context) {
	var input service.ContactInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := a.contact.Update(c.Param("id"), input)
	if err != nil {
		respondContactError(c, err, "更新联系方式失败")
		return
	}
	respondOK(c, item)
}

// DeleteContact 停用或删除联系方式
func (a *API) DeleteContact(c *gin.Context) {
	if err := a.contact.Delete(c.Param("id"), permanentDelete(c)); err != nil {
		respondContactError(c, err, "删除联系方式失败")
		return
	}
	respondOK(c, nil)
}

type markReadRequest struct {
	Read *bool `json:"read"`
}

// ListContactMessages 后台留言列表，unread=true 只看未读。
func (a *API) ListContactMessages(c *gin.Context) {
	filter := service.MessageFilter{ListFilter: parseListFilter(c)}
	if unread := parseBoolQuery(c, "unread"); unread != nil {
		filter.Unread = *unread
	}
	result, err := a.contact.ListMessages(filter)
	if err != nil {
		respondServerError(c, err, "获取留言失败")
		return
	}
	respondOK(c, result)
}

// GetContactMessage 获取单条留言
func (a *API) GetContactMessage(c *gin.Context) {
	item, err := a.contact.GetMessage(c.Param("id"))
	if err != nil {
		respondContactError(c, err, "获取留言失败")
		return
	}
	respondOK(c, item)
}

// MarkContactMessageRead 标记已读，body 传 {"read": false} 可恢复未读。
func (a *API) MarkContactMessageRead(c *gin.Context) {
	read := true
	if c.Request.ContentLength > 0 {
		var req markReadRequest
		if !bindJSON(c, &req) {
			return
		}
		if req.Read != nil {
			read = *req.Read
		}
	}

	item, err := a.contact.MarkMessageRead(c.Param("id"), read)
	if err != nil {
		respondContactError(c, err, "更新留言失败")
		return
	}
	respondOK(c, item)
}

// DeleteContactMessage 归档或删除留言
func (a *API) DeleteContactMessage(c *gin.Context) {
	if err := a.contact.DeleteMessage(c.Param("id"), permanentDelete(c)); err != nil {
		respondContactError(c, err, "删除留言失败")
		return
	}
	respondOK(c, nil)
}
