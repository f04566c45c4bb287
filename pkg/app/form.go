package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
)

// ValidError single field validation failure // 单个字段校验失败
type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// MapsToString returns key→message pairs for structured error payloads
// MapsToString 返回字段→消息映射，用于结构化错误负载
func (v ValidErrors) MapsToString() map[string]string {
	m := make(map[string]string, len(v))
	for _, err := range v {
		m[err.Key] = err.Message
	}
	return m
}

// BindAndValid binds request parameters and validates them, translating
// validator messages with the translator stored on the context by the
// lang middleware.
// BindAndValid 绑定请求参数并校验，使用 lang 中间件存入上下文的
// 翻译器翻译校验消息。
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors

	err := c.ShouldBind(v)
	if err == nil {
		return true, nil
	}

	verrs, ok := err.(val.ValidationErrors)
	if !ok {
		errs = append(errs, &ValidError{Key: "body", Message: err.Error()})
		return false, errs
	}

	trans, _ := c.Get("trans")
	translator, hasTrans := trans.(ut.Translator)

	for _, verr := range verrs {
		message := verr.Error()
		if hasTrans {
			message = verr.Translate(translator)
		}
		errs = append(errs, &ValidError{
			Key:     verr.Field(),
			Message: message,
		})
	}

	return false, errs
}
