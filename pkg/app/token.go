package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// 默认 Token 签发者
const DefaultTokenIssuer = "photo-share-service"

// TokenConfig 定义管理端 Token 管理器的配置
type TokenConfig struct {
	SecretKey string        `yaml:"secret-key"` // JWT 签名密钥
	Expiry    time.Duration `yaml:"expiry"`     // Token 过期时间，默认 7 天
	Issuer    string        `yaml:"issuer"`     // Token 签发者
}

// TokenManager issues and verifies the JWT used by the management API.
// Share-token visitors never touch this; their access is possession based.
// TokenManager 签发与校验管理 API 使用的 JWT。
// 分享 Token 的访客不经过它，访客访问基于持有 Token 本身。
type TokenManager interface {
	Generate(operator string, ip string) (string, error)
	Parse(token string) (*OperatorEntity, error)
	Validate(token string) error
}

type tokenManager struct {
	config TokenConfig
}

// NewTokenManager 创建一个新的 TokenManager 实例
func NewTokenManager(cfg TokenConfig) TokenManager {
	if cfg.Expiry == 0 {
		cfg.Expiry = 7 * 24 * time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultTokenIssuer
	}
	return &tokenManager{config: cfg}
}

// OperatorEntity represents the management operator stored in the JWT.
type OperatorEntity struct {
	Operator string `json:"operator"`
	IP       string `json:"ip"`
	jwt.RegisteredClaims
}

// Generate 生成一个新的 JWT Token
func (t *tokenManager) Generate(operator string, ip string) (string, error) {
	now := time.Now()
	claims := &OperatorEntity{
		Operator: operator,
		IP:       ip,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    t.config.Issuer,
			Subject:   "operator-token",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.config.SecretKey))
}

// Parse 解析 JWT Token 并返回操作者信息
func (t *tokenManager) Parse(token string) (*OperatorEntity, error) {
	claims := &OperatorEntity{}

	parsedToken, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(t.config.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsedToken.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Validate 验证 Token 是否有效
func (t *tokenManager) Validate(token string) error {
	_, err := t.Parse(token)
	return err
}

// GetOperator extracts the operator name from the request context.
// GetOperator 从请求上下文中提取操作者名称。
func GetOperator(ctx *gin.Context) string {
	if v, exists := ctx.Get("operator"); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
