package dao

import (
	"regexp"
	"strings"
)

// 缺列降级插入：线上库的表结构可能落后于代码（迁移被关闭或只做了一半），
// 插入报缺列时把该列从计划里剔除后重试，核心列缺失则直接失败。

// shareTokenCoreColumns 不可降级的核心列，缺失说明表结构不可用
var shareTokenCoreColumns = map[string]bool{
	"token":      true,
	"event_id":   true,
	"scope_type": true,
	"is_active":  true,
	"created_at": true,
	"updated_at": true,
}

// pruneColumns 返回去掉 dropped 列后的新列计划，不修改入参
func pruneColumns(cols map[string]interface{}, dropped map[string]bool) map[string]interface{} {
	out := make(map[string]interface{}, len(cols))
	for k, v := range cols {
		if dropped[k] {
			continue
		}
		out[k] = v
	}
	return out
}

// 各方言缺列报错的文本形态
var missingColumnPatterns = []*regexp.Regexp{
	// sqlite: table share_token has no column named foo
	regexp.MustCompile(`has no column named (\w+)`),
	// sqlite: no such column: foo
	regexp.MustCompile(`no such column:?\s+"?(\w+)"?`),
	// mysql: Error 1054: Unknown column 'foo' in 'field list'
	regexp.MustCompile(`Unknown column '([^']+)'`),
	// postgres: column "foo" of relation "share_token" does not exist
	regexp.MustCompile(`column "([^"]+)" of relation`),
}

// missingColumn 从数据库报错里解析缺失的列名
func missingColumn(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	msg := err.Error()
	for _, p := range missingColumnPatterns {
		if m := p.FindStringSubmatch(msg); len(m) == 2 {
			return m[1], true
		}
	}
	return "", false
}

// isDuplicateErr 唯一约束冲突（token 碰撞或重复提交）
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "Duplicate entry") || // mysql
		strings.Contains(msg, "duplicate key value") // postgres
}
