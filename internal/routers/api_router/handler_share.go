package api_router

import (
	"github.com/lumapix/photo-share-service/internal/app"
	"github.com/lumapix/photo-share-service/internal/domain"
	"github.com/lumapix/photo-share-service/internal/dto"
	pkgapp "github.com/lumapix/photo-share-service/pkg/app"
	"github.com/lumapix/photo-share-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// ShareHandler 分享管理 API 路由处理器
type ShareHandler struct {
	*Handler
}

// NewShareHandler 创建 ShareHandler 实例
func NewShareHandler(a *app.App) *ShareHandler {
	return &ShareHandler{Handler: NewHandler(a)}
}

// issueErrToCode 签发侧领域错误到响应码的映射
func issueErrToCode(err error) *code.Code {
	switch {
	case errors.Is(err, domain.ErrEventUnresolvable):
		return code.ErrorShareEventUnresolvable
	case errors.Is(err, domain.ErrScopeInvalid):
		return code.ErrorShareScopeValidation
	case errors.Is(err, domain.ErrPersistReference):
		return code.ErrorSharePersistReference
	case errors.Is(err, domain.ErrPersistDuplicate):
		return code.ErrorSharePersistDuplicate
	case errors.Is(err, domain.ErrPersistUnavailable):
		return code.ErrorSharePersist
	case errors.Is(err, domain.ErrShareNotFound):
		return code.ErrorShareNotFound
	case errors.Is(err, domain.ErrShareInactive):
		return code.ErrorShareNotFound.WithDetails("share has been revoked")
	default:
		return code.Failed.WithDetails(err.Error())
	}
}

// Create 签发分享
// @Summary Create a share token
// @Description Resolve the scope, snapshot its assets and issue a share token
// @Tags Share
// @Security AdminAuthToken
// @Accept json
// @Produce json
// @Param params body dto.ShareCreateRequest true "Share Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.ShareResponse} "Success"
// @Router /api/shares [post]
func (h *ShareHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ShareCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	resp, err := h.App.ShareService.CreateShare(c.Request.Context(), params)
	if err != nil {
		response.ToResponse(issueErrToCode(err))
		return
	}
	response.ToResponse(code.Success.WithData(resp))
}

// Get 获取分享详情
// @Summary Get a share
// @Tags Share
// @Security AdminAuthToken
// @Produce json
// @Param params query dto.ShareRevokeRequest true "Share ID"
// @Success 200 {object} pkgapp.Res{data=dto.ShareResponse} "Success"
// @Router /api/shares/detail [get]
func (h *ShareHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ShareRevokeRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	resp, err := h.App.ShareService.GetShare(c.Request.Context(), params.ID)
	if err != nil {
		response.ToResponse(issueErrToCode(err))
		return
	}
	response.ToResponse(code.Success.WithData(resp))
}

// List 分页列出活动下的分享
// @Summary List shares of an event
// @Tags Share
// @Security AdminAuthToken
// @Produce json
// @Param params query dto.ShareListRequest true "List Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.ShareListResponse} "Success"
// @Router /api/shares [get]
func (h *ShareHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ShareListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	cfg := h.App.Config()
	page := pkgapp.GetPage(c)
	pageSize := pkgapp.GetPageSizeWithConfig(c, pkgapp.PaginationConfig{
		DefaultPageSize: cfg.App.DefaultPageSize,
		MaxPageSize:     cfg.App.MaxPageSize,
	})

	resp, err := h.App.ShareService.ListShares(c.Request.Context(), params.EventID, page, pageSize)
	if err != nil {
		response.ToResponse(issueErrToCode(err))
		return
	}
	response.ToResponseList(code.Success, resp.List, int(resp.Total))
}

// Revoke 撤销分享
// @Summary Revoke a share
// @Tags Share
// @Security AdminAuthToken
// @Accept json
// @Produce json
// @Param params body dto.ShareRevokeRequest true "Share ID"
// @Success 200 {object} pkgapp.Res "Success"
// @Router /api/shares/revoke [post]
func (h *ShareHandler) Revoke(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ShareRevokeRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	if err := h.App.ShareService.RevokeShare(c.Request.Context(), params.ID); err != nil {
		response.ToResponse(issueErrToCode(err))
		return
	}
	response.ToResponse(code.Success)
}

// RevokeByFolder 撤销锚定某目录的全部有效分享
// @Summary Revoke all active shares anchored to a folder
// @Description Used when a folder is deleted or made private
// @Tags Share
// @Security AdminAuthToken
// @Accept json
// @Produce json
// @Param params body dto.ShareRevokeByFolderRequest true "Folder Reference"
// @Success 200 {object} pkgapp.Res{data=dto.ShareRevokeByFolderResponse} "Success"
// @Router /api/shares/revoke-by-folder [post]
func (h *ShareHandler) RevokeByFolder(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ShareRevokeByFolderRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	revoked, err := h.App.ShareService.RevokeByFolder(c.Request.Context(), params.EventID, params.FolderID)
	if err != nil {
		response.ToResponse(issueErrToCode(err))
		return
	}
	response.ToResponse(code.Success.WithData(dto.ShareRevokeByFolderResponse{Revoked: revoked}))
}

// Rotate 轮换分享 Token
// @Summary Rotate the token of a share
// @Description Issue a fresh token for the same scope snapshot and revoke the old one
// @Tags Share
// @Security AdminAuthToken
// @Accept json
// @Produce json
// @Param params body dto.ShareRotateRequest true "Share ID"
// @Success 200 {object} pkgapp.Res{data=dto.ShareResponse} "Success"
// @Router /api/shares/rotate [post]
func (h *ShareHandler) Rotate(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ShareRotateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	resp, err := h.App.ShareService.RotateToken(c.Request.Context(), params.ID)
	if err != nil {
		response.ToResponse(issueErrToCode(err))
		return
	}
	response.ToResponse(code.Success.WithData(resp))
}

// Stats 获取分享的访问统计
// @Summary Get access statistics of a share
// @Tags Share
// @Security AdminAuthToken
// @Produce json
// @Param params query dto.ShareRevokeRequest true "Share ID"
// @Success 200 {object} pkgapp.Res{data=dto.ShareStatsResponse} "Success"
// @Router /api/shares/stats [get]
func (h *ShareHandler) Stats(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ShareRevokeRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	resp, err := h.App.ShareService.GetStats(c.Request.Context(), params.ID)
	if err != nil {
		response.ToResponse(issueErrToCode(err))
		return
	}
	response.ToResponse(code.Success.WithData(resp))
}

// AccessLogs 分页列出某 token 的审计记录
// @Summary List audit records of a token
// @Tags Share
// @Security AdminAuthToken
// @Produce json
// @Param params query dto.AccessLogListRequest true "Token"
// @Success 200 {object} pkgapp.Res{data=[]dto.AccessLogResponse} "Success"
// @Router /api/shares/logs [get]
func (h *ShareHandler) AccessLogs(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.AccessLogListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	cfg := h.App.Config()
	page := pkgapp.GetPage(c)
	pageSize := pkgapp.GetPageSizeWithConfig(c, pkgapp.PaginationConfig{
		DefaultPageSize: cfg.App.DefaultPageSize,
		MaxPageSize:     cfg.App.MaxPageSize,
	})

	list, err := h.App.ShareService.ListAccessLogs(c.Request.Context(), params.Token, page, pageSize)
	if err != nil {
		response.ToResponse(issueErrToCode(err))
		return
	}
	response.ToResponse(code.Success.WithData(list))
}

// SuspiciousIPs 列出窗口内失败次数超阈值的 IP
// @Summary List suspicious IPs
// @Tags Share
// @Security AdminAuthToken
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.SuspiciousIPResponse} "Success"
// @Router /api/shares/suspicious-ips [get]
func (h *ShareHandler) SuspiciousIPs(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	resp, err := h.App.SecurityService.ListSuspiciousIPs(c.Request.Context())
	if err != nil {
		response.ToResponse(issueErrToCode(err))
		return
	}
	response.ToResponse(code.Success.WithData(resp))
}
