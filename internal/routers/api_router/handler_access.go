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

// AccessHandler 访客访问 API 路由处理器
type AccessHandler struct {
	*Handler
}

// NewAccessHandler 创建 AccessHandler 实例
func NewAccessHandler(a *app.App) *AccessHandler {
	return &AccessHandler{Handler: NewHandler(a)}
}

// accessErrToCode 访问侧领域错误到响应码的映射
// A revoked or unknown token always reports the same code.
func accessErrToCode(err error) *code.Code {
	switch {
	case errors.Is(err, domain.ErrShareNotFound):
		return code.ErrorShareInvalidToken
	case errors.Is(err, domain.ErrShareExpired):
		return code.ErrorShareExpired
	case errors.Is(err, domain.ErrShareMaxViews):
		return code.ErrorShareMaxViews
	case errors.Is(err, domain.ErrSharePasswordNeeded):
		return code.ErrorSharePasswordRequired
	case errors.Is(err, domain.ErrSharePasswordWrong):
		return code.ErrorSharePasswordWrong
	case errors.Is(err, domain.ErrAccessRateLimited):
		return code.ErrorTooManyRequests
	case errors.Is(err, domain.ErrAccessSuspiciousIP):
		return code.ErrorTooManyRequests
	default:
		return code.Failed.WithDetails(err.Error())
	}
}

// Access 访客凭 token 访问分享
// @Summary Access a share by token
// @Description Validate the token, then return the asset list with signed URLs
// @Tags Access
// @Accept json
// @Produce json
// @Param params body dto.AccessRequest true "Access Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.AccessResponse} "Success"
// @Router /api/access [post]
func (h *AccessHandler) Access(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.AccessRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	resp, err := h.App.AccessService.Access(c.Request.Context(), params,
		pkgapp.GetRequestIP(c), c.Request.UserAgent())
	if err != nil {
		response.ToResponse(accessErrToCode(err))
		return
	}
	response.ToResponse(code.Success.WithData(resp))
}
