// Package response формирует единый JSON-конверт ответов HTTP-обработчиков.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response конверт ответа. Fields заполняется только при ошибках валидации
// и содержит сообщение для каждого поля формы.
type Response struct {
	Status string            `json:"status"`
	Error  string            `json:"error,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
	Data   any               `json:"data,omitempty"`
}

// ErrorResponse ошибка без данных, для аннотаций @Failure.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// шаблоны сообщений по тегу: первый %s имя поля, второй параметр тега
var tagMessages = map[string]string{
	"required":  "field %s is a required field",
	"numeric":   "field %s can contain only numbers",
	"len":       "field %s must be exactly %s characters long",
	"email":     "field %s must be a valid email",
	"moz_phone": "field %s must be a mozambican number 8[2-7]XXXXXXX",
	"date":      "field %s can contain only date in format YYYY-MM-DD",
	"oneof":     "field %s must be one of: %s",
	"gte":       "field %s must not be negative",
}

func fieldMessage(err validator.FieldError) string {
	format, ok := tagMessages[err.ActualTag()]
	if !ok {
		return fmt.Sprintf("field %s is not valid", err.Field())
	}
	if strings.Count(format, "%s") == 2 {
		return fmt.Sprintf(format, err.Field(), err.Param())
	}
	return fmt.Sprintf(format, err.Field())
}

// ValidationError собирает сообщения по всем нарушениям: общий текст через запятую
// и карту поле -> сообщение.
func ValidationError(errs validator.ValidationErrors) Response {
	fields := make(map[string]string, len(errs))
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msg := fieldMessage(err)
		fields[err.Field()] = msg
		msgs = append(msgs, msg)
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(msgs, ", "),
		Fields: fields,
	}
}
