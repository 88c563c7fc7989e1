package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"local_mart/apperr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type clientError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ParseBody decodes a JSON request body into out.
func ParseBody(body io.Reader, out interface{}) error {
	return json.NewDecoder(body).Decode(out)
}

// ValidateBody checks validate tags on body and reports the first problem of
// every invalid field as a validation error.
func ValidateBody(body interface{}) error {
	err := validate.Struct(body)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperr.Validation("invalid request body")
	}
	return &FieldErrors{fields: fieldErrs}
}

// FieldErrors is a validation failure carrying per-field details.
type FieldErrors struct {
	fields validator.ValidationErrors
}

func (e *FieldErrors) Error() string {
	return e.fields.Error()
}

func (e *FieldErrors) Unwrap() error {
	return apperr.Validation("input field is invalid")
}

// Fields maps a dotted field path to the violated rule.
func (e *FieldErrors) Fields() map[string]string {
	out := make(map[string]string, len(e.fields))
	for _, fe := range e.fields {
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		out[path] = rule
	}
	return out
}

// ParseAndValidate decodes and validates a request body in one step.
func ParseAndValidate(r *http.Request, out interface{}) error {
	if err := ParseBody(r.Body, out); err != nil {
		return apperr.Validation("failed to parse request body")
	}
	return ValidateBody(out)
}

func RespondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body != nil {
		if err := EncodeJSONBody(w, body); err != nil {
			logrus.Errorf("RespondJSON: failed to encode body err = %v", err)
		}
	}
}

func EncodeJSONBody(w io.Writer, body interface{}) error {
	return json.NewEncoder(w).Encode(body)
}

// RespondError writes err with the status and message its kind maps to.
// Internal failures are logged and answered with a generic message.
func RespondError(w http.ResponseWriter, err error) {
	status := apperr.StatusCode(err)
	body := clientError{Error: apperr.PublicMessage(err)}

	var fieldErrs *FieldErrors
	if errors.As(err, &fieldErrs) {
		body.Fields = fieldErrs.Fields()
	}
	if status >= http.StatusInternalServerError {
		logrus.Errorf("RespondError: %v", err)
	}
	RespondJSON(w, status, body)
}
