package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// fieldHints 类型错误时的提示
// 压测脚本会断言400响应里的错误消息,这里的文本保持稳定
var fieldHints = map[string]string{
	"price":          "price must be a non-negative number",
	"stock":          "stock must be a non-negative integer",
	"published_year": "published_year must be an integer",
	"user_id":        "user_id must be a positive integer",
	"book_id":        "book_id must be a positive integer",
	"quantity":       "quantity must be a positive integer",
	"id":             "id must be a positive integer",
}

var setupOnce sync.Once

// Setup 配置gin的绑定行为
// 1. JSON解码拒绝未知字段
// 2. 校验错误使用json/form标签名(title而不是Title)
func Setup() {
	setupOnce.Do(func() {
		binding.EnableDecoderDisallowUnknownFields = true

		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(tagName)
		}
	})
}

func tagName(f reflect.StructField) string {
	for _, key := range []string{"json", "form", "uri"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// BindingMessage 把绑定/校验错误转换为面向调用方的描述
func BindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "max":
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		default:
			if hint, ok := fieldHints[fe.Field()]; ok {
				return hint
			}
			return fmt.Sprintf("%s is invalid", fe.Field())
		}
	}

	if errors.Is(err, ErrInvalidAmount) {
		return ErrInvalidAmount.Error()
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}
		if hint, ok := fieldHints[field]; ok {
			return hint
		}
		return fmt.Sprintf("%s must be a %s", field, typeErr.Type.String())
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return "malformed JSON body"
	}
	if errors.Is(err, io.EOF) {
		return "request body is required"
	}

	// encoding/json的未知字段错误没有导出类型,只能按前缀识别
	if msg := err.Error(); strings.HasPrefix(msg, "json: unknown field ") {
		return strings.TrimPrefix(msg, "json: ")
	}

	return err.Error()
}

// PositiveInt64 解析必填的正整数参数(路径或查询参数)
// 返回的error消息可以直接作为400响应
func PositiveInt64(name, raw string) (int64, error) {
	if raw == "" {
		return 0, errors.New(name + " is required")
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		if hint, ok := fieldHints[name]; ok {
			return 0, errors.New(hint)
		}
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return v, nil
}

// QueryInt 读取整数查询参数,缺失或无法解析时返回def
func QueryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

// QueryInt64 同QueryInt
func QueryInt64(c *gin.Context, key string, def int64) int64 {
	v, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil {
		return def
	}
	return v
}
