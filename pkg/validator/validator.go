// Package validator gin参数校验扩展
//
// 注册内容：
//   - 字段名使用json/form tag（错误详情里是 "rating" 而不是 "Rating"）
//   - decimal.Decimal按字符串校验
//   - money2：金额最多2位小数、非负、不超过上限
//   - notblank：去掉首尾空白后不能为空
//
// Translate把绑定错误转换为带字段详情的AppError
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
	"github.com/xiebiao/bookstore-backend/pkg/money"
)

var (
	registerOnce sync.Once

	// standalone 供领域层做单值校验（邮箱、URL）
	standalone = validator.New()
)

// Register 向gin的默认校验引擎注册自定义规则（可重复调用）
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		Setup(v)
	})
}

// Setup 在指定的校验器上注册规则
func Setup(v *validator.Validate) {
	v.RegisterTagNameFunc(fieldName)
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	_ = v.RegisterValidation("money2", validateMoney)
	_ = v.RegisterValidation("notblank", validateNotBlank)
}

// fieldName 优先json tag，其次form tag
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func decimalValue(v reflect.Value) interface{} {
	if d, ok := v.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func validateMoney(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := money.Parse(s)
	return err == nil
}

func validateNotBlank(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return true
	}
	return strings.TrimSpace(s) != ""
}

// Translate 绑定/校验错误 → AppError（40900 + 字段详情）
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := apperrors.FieldErrors{}
		for _, fe := range verrs {
			details.Add(fieldPath(fe), message(fe))
		}
		return details.Err()
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperrors.NewValidation(typeErr.Field, fmt.Sprintf("类型错误，应为%s", typeErr.Type.String()))
	}

	return apperrors.ErrBindError.WithErr(err)
}

// fieldPath 去掉根结构体名：CreateOrderRequest.items[0].quantity → items[0].quantity
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required", "notblank":
		return "不能为空"
	case "max":
		if isString {
			return fmt.Sprintf("长度不能超过%s", fe.Param())
		}
		return fmt.Sprintf("不能大于%s", fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("长度不能少于%s", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("至少需要%s项", fe.Param())
		}
		return fmt.Sprintf("不能小于%s", fe.Param())
	case "gte":
		return fmt.Sprintf("不能小于%s", fe.Param())
	case "lte":
		return fmt.Sprintf("不能大于%s", fe.Param())
	case "oneof":
		return fmt.Sprintf("必须是[%s]之一", fe.Param())
	case "email":
		return "邮箱格式不正确"
	case "url":
		return "URL格式不正确"
	case "money2":
		return "金额格式不正确（非负，最多2位小数）"
	case "datetime":
		return fmt.Sprintf("日期格式应为%s", fe.Param())
	default:
		return fmt.Sprintf("校验失败(%s)", fe.Tag())
	}
}

// IsEmail 单值邮箱校验
func IsEmail(s string) bool {
	return standalone.Var(s, "email") == nil
}

// IsURL 单值URL校验（需带scheme）
func IsURL(s string) bool {
	return standalone.Var(s, "url") == nil
}
