package api_router

import (
	"testing"

	"github.com/lumapix/photo-share-service/internal/domain"
	"github.com/lumapix/photo-share-service/pkg/code"

	"github.com/stretchr/testify/assert"
)

// 访问侧领域错误到响应码的映射，缺口令与口令错误各占一码
func TestAccessErrToCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrShareNotFound, code.ErrorShareInvalidToken.Code()},
		{domain.ErrShareExpired, code.ErrorShareExpired.Code()},
		{domain.ErrShareMaxViews, code.ErrorShareMaxViews.Code()},
		{domain.ErrSharePasswordNeeded, code.ErrorSharePasswordRequired.Code()},
		{domain.ErrSharePasswordWrong, code.ErrorSharePasswordWrong.Code()},
		{domain.ErrAccessRateLimited, code.ErrorTooManyRequests.Code()},
		{domain.ErrAccessSuspiciousIP, code.ErrorTooManyRequests.Code()},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, accessErrToCode(c.err).Code(), c.err.Error())
	}

	assert.Equal(t, 20004, code.ErrorSharePasswordRequired.Code())
	assert.Equal(t, 20005, code.ErrorSharePasswordWrong.Code())
}
