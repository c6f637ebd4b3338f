package serializer

import (
	"net/http"
)

// Response is the body of every API reply. Failures always carry Error.
type Response struct {
	Code  int         `json:"code"`
	Data  interface{} `json:"data,omitempty"`
	Msg   string      `json:"msg"`
	Error string      `json:"error,omitempty"`
}

// TrackedErrorResponse is Response plus the trace id of the failed request.
type TrackedErrorResponse struct {
	Response
	TraceID string `json:"trace_id"`
}

func OK(data interface{}) Response {
	return Response{Code: http.StatusOK, Data: data, Msg: "ok"}
}

// Err builds a failure. Error is err's message when given, otherwise msg.
func Err(errCode int, msg string, err error) Response {
	res := Response{
		Code:  errCode,
		Msg:   msg,
		Error: msg,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

// DBErr passes the store's message through.
func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "database error"
	}
	return Err(http.StatusInternalServerError, msg, err)
}

func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "parameter error"
	}
	return Err(http.StatusBadRequest, msg, err)
}

func AuthErr(msg string) Response {
	if msg == "" {
		msg = "authentication error"
	}
	return Err(http.StatusUnauthorized, msg, nil)
}

func NotFoundErr(msg string) Response {
	if msg == "" {
		msg = "not found"
	}
	return Err(http.StatusNotFound, msg, nil)
}

// GenerationErr hides the model failure detail from clients.
func GenerationErr() Response {
	return Err(http.StatusInternalServerError, "failed to generate activities", nil)
}
