// Package validation decodes and checks request input. Every failure is a
// Validation error whose message is "Validation failed: <first problem>".
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"hrms/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const prefix = "Validation failed: "

// MaxBodyBytes caps JSON request bodies read by DecodeJSON.
const MaxBodyBytes = 1 << 20

var setupOnce sync.Once

// Setup configures gin's validator to report JSON/form field names. It is
// idempotent and must run before the first request is validated.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
	})
}

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

// Failed builds the Validation error for msg.
func Failed(msg string) error {
	return domain.NewValidation(prefix + msg)
}

// DecodeJSON reads the body into dst rejecting unknown properties, trims
// every string field and validates the result.
func DecodeJSON(c *gin.Context, dst any) error {
	Setup()
	if c.Request.Body == nil {
		return Failed("request body is required")
	}
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.New(domain.KindBadRequest, "Request body is too large", http.StatusRequestEntityTooLarge)
		}
		return Failed("request body could not be read")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return Failed(describeDecodeError(err))
	}

	TrimStrings(dst)
	return Struct(dst)
}

// BindQuery binds query parameters into dst and validates it.
func BindQuery(c *gin.Context, dst any) error {
	Setup()
	if err := c.ShouldBindWith(dst, binding.Query); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return Failed(describe(verrs[0]))
		}
		return Failed("invalid query parameters")
	}
	return nil
}

// Struct validates an already populated value.
func Struct(v any) error {
	Setup()
	if err := binding.Validator.ValidateStruct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Failed(describe(verrs[0]))
		}
		return Failed(err.Error())
	}
	return nil
}

// ParseID reads a numeric path parameter.
func ParseID(c *gin.Context, name string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil {
		return 0, Failed("Numeric string is expected")
	}
	return n, nil
}

// ParsePage reads optional pageId/pageSize query parameters.
func ParsePage(c *gin.Context) (domain.PageRequest, error) {
	var page domain.PageRequest
	for _, p := range []struct {
		key string
		dst **int
	}{{"pageId", &page.PageID}, {"pageSize", &page.PageSize}} {
		raw, ok := c.GetQuery(p.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return page, Failed(p.key + " must be an integer number")
		}
		*p.dst = &n
	}
	return page, Struct(&page)
}

// TrimStrings trims string and *string fields of the struct dst points to.
func TrimStrings(dst any) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch {
		case f.Kind() == reflect.String:
			f.SetString(strings.TrimSpace(f.String()))
		case f.Kind() == reflect.Pointer && !f.IsNil() && f.Elem().Kind() == reflect.String:
			f.Elem().SetString(strings.TrimSpace(f.Elem().String()))
		}
	}
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		return fmt.Sprintf("%s must be a %s", typeErr.Field, jsonKind(typeErr.Type))
	case errors.As(err, &syntaxErr):
		return "request body is not valid JSON"
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return fmt.Sprintf("property %s should not exist", field)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return "request body is not valid JSON"
	default:
		return "request body is invalid"
	}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "number"
	case reflect.Bool:
		return "boolean"
	default:
		return t.Kind().String()
	}
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return field + " should not be empty"
	case "min":
		if isString {
			return fmt.Sprintf("%s must be longer than or equal to %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must not be less than %s", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be shorter than or equal to %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must not be greater than %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "email":
		return field + " must be an email"
	case "oneof":
		return field + " must be " + orList(strings.Fields(fe.Param()))
	case "datetime":
		return field + " must be a valid date (YYYY-MM-DD)"
	default:
		return field + " is invalid"
	}
}

func orList(values []string) string {
	switch len(values) {
	case 0:
		return "a valid value"
	case 1:
		return values[0]
	default:
		return strings.Join(values[:len(values)-1], ", ") + " or " + values[len(values)-1]
	}
}
