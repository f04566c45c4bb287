package util

import (
	"crypto/rand"
	"encoding/hex"
	mathrand "math/rand"
	"regexp"
)

// ShareTokenBytes share token 的随机字节数，256 bit
const ShareTokenBytes = 32

// ShareTokenLength hex 编码后的 token 字符串长度
const ShareTokenLength = ShareTokenBytes * 2

// shareTokenPattern token 的合法形态：固定长度小写 hex，无填充字符
var shareTokenPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// GenerateShareToken generates an opaque share token with 256 bits of
// cryptographically strong randomness, hex encoded (URL-safe, no padding).
// GenerateShareToken 生成 256 位加密强随机的分享 Token，
// hex 编码（URL 安全，无填充字符）。
func GenerateShareToken() (string, error) {
	buf := make([]byte, ShareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// IsValidShareToken checks the token shape before any store lookup
// IsValidShareToken 在任何存储查询前校验 Token 形态
func IsValidShareToken(token string) bool {
	return shareTokenPattern.MatchString(token)
}

// GetRandomString generates a random string of the given length,
// for non-security uses such as generated config secrets.
// GetRandomString 生成指定长度的随机字符串，用于非安全场景。
func GetRandomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	b := make([]byte, length)
	for i := range b {
		b[i] = charset[mathrand.Intn(len(charset))]
	}
	return string(b)
}
