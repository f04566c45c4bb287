package util

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2id 参数，参考 RFC 9106 第二推荐配置
const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 2
	argonKeyLen  = 32
	argonSaltLen = 16
)

var ErrMalformedPasswordHash = errors.New("malformed password hash")

// GeneratePasswordHash hashes a password with argon2id and a per-record
// random salt. The result embeds all parameters so it stays verifiable
// after the defaults change.
// GeneratePasswordHash 使用 argon2id 与逐条随机盐对密码进行哈希，
// 结果内嵌全部参数，参数默认值调整后仍可校验。
func GeneratePasswordHash(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// CheckPasswordHash verifies whether password matches the stored hash
// using a constant-time comparison.
// CheckPasswordHash 以恒定时间比较验证密码与存储哈希是否匹配。
func CheckPasswordHash(hash, password string) bool {
	salt, key, memory, timeCost, threads, err := parsePasswordHash(hash)
	if err != nil {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, timeCost, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

func parsePasswordHash(hash string) (salt, key []byte, memory, timeCost uint32, threads uint8, err error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, ErrMalformedPasswordHash
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedPasswordHash
	}
	if version != argon2.Version {
		return nil, nil, 0, 0, 0, ErrMalformedPasswordHash
	}

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &timeCost, &threads); err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedPasswordHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedPasswordHash
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedPasswordHash
	}
	return salt, key, memory, timeCost, threads, nil
}
