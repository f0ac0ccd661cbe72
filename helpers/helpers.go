package helpers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// JSONSuccess writes a concise success response.
// Behavior:
// - if data == nil && message == "" -> 204 No Content
// - if data != nil && message == "" -> write data directly with given code
// - if data == nil && message != "" -> {"message": message}
// - if data != nil && message != "" -> {"message": message, "data": data}
func JSONSuccess(c echo.Context, code int, data any, message string) error {
	if data == nil && message == "" {
		return c.NoContent(http.StatusNoContent)
	}
	if message == "" {
		return c.JSON(code, data)
	}
	if data == nil {
		return c.JSON(code, map[string]string{"message": message})
	}
	return c.JSON(code, map[string]any{"message": message, "data": data})
}

// JSONError writes {"error":"<text>"} with the provided HTTP code.
// Accepts string, error, or any type (it will be fmt.Sprintf'd).
func JSONError(c echo.Context, code int, err any) error {
	var msg string
	switch v := err.(type) {
	case nil:
		msg = http.StatusText(code)
	case string:
		if v == "" {
			msg = http.StatusText(code)
		} else {
			msg = v
		}
	case error:
		if v.Error() == "" {
			msg = http.StatusText(code)
		} else {
			msg = v.Error()
		}
	default:
		msg = fmt.Sprintf("%v", v)
	}
	return c.JSON(code, map[string]string{"error": msg})
}

// BindAndValidate binds the request body into req and validates it. On
// validation failure the offending fields are named in the error payload so
// the assistant host can repair its tool arguments.
func BindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		_ = JSONError(c, http.StatusBadRequest, "invalid json")
		return err
	}

	if err := validate.Struct(req); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field()))
			}
		}
		msg := "missing or invalid fields"
		if len(fields) > 0 {
			msg += ": " + strings.Join(fields, ", ")
		}
		_ = JSONError(c, http.StatusBadRequest, msg)
		return err
	}

	return nil
}
