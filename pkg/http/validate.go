package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// MaxBodyBytes caps how much of a request body is read. Larger bodies fail to
// bind.
const MaxBodyBytes = 10 << 20

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// ReadAndValidateRequest binds the JSON body into req, applies `default` tags
// and runs `validate` tags. An empty payload (see IsEmptyPayload) is reported
// as no data.
// The returned error is always an *AppError.
func ReadAndValidateRequest(c echo.Context, req interface{}) error {
	r := c.Request()
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
	if err != nil {
		return BadRequestError(MsgInvalidBody).WithError(err)
	}
	if IsEmptyPayload(body) {
		return BadRequestError(MsgNoData)
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	r.ContentLength = int64(len(body))

	if err := c.Bind(req); err != nil {
		return BadRequestError(MsgInvalidBody).WithError(err)
	}

	if err := defaults.Set(req); err != nil {
		return InternalError(MsgInternal).WithError(err)
	}

	if err := validate.StructCtx(c.Request().Context(), req); err != nil {
		return validationError(err)
	}

	return nil
}

// IsEmptyPayload reports whether a JSON body carries nothing: blank, null, {}
// or [].
func IsEmptyPayload(body []byte) bool {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return true
	}
	switch body[0] {
	case '{':
		var fields map[string]json.RawMessage
		return json.Unmarshal(body, &fields) == nil && len(fields) == 0
	case '[':
		var items []json.RawMessage
		return json.Unmarshal(body, &items) == nil && len(items) == 0
	}
	return false
}

// ValidateStruct runs `validate` tags on v outside of an HTTP request.
func ValidateStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) *AppError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return BadRequestError(err.Error()).WithError(err)
	}

	var missing, other []string
	for _, e := range validationErrors {
		if e.Tag() == "required" {
			missing = append(missing, e.Field())
			continue
		}
		other = append(other, e.Field()+" failed validation: "+e.Tag())
	}

	if len(missing) > 0 {
		return BadRequestError(MsgMissingField + ": " + strings.Join(missing, ", ")).WithError(err)
	}
	return BadRequestError(strings.Join(other, "; ")).WithError(err)
}
