package net

import (
	"net/http"

	perr "landingrouter/internal/platform/errors"
)

// Wire is the response envelope shared by every JSON surface
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func envelope(status int, data any, reqID string) Wire {
	return Wire{StatusCode: status, Status: http.StatusText(status), RequestID: reqID, Data: data}
}

// OK builds a 200 envelope
func OK(data any, reqID string) (int, Wire) {
	return http.StatusOK, envelope(http.StatusOK, data, reqID)
}

// NoContent builds a 204 envelope
func NoContent(reqID string) (int, Wire) {
	return http.StatusNoContent, envelope(http.StatusNoContent, nil, reqID)
}

// Error builds an error envelope; nil err is OK(nil)
func Error(err error, reqID string) (int, Wire) {
	return ErrorWith(err, nil, reqID)
}

// ErrorWith is Error with a data payload, e.g. the issues behind an unroutable host
func ErrorWith(err error, data any, reqID string) (int, Wire) {
	if err == nil {
		return OK(data, reqID)
	}
	status, w := perr.HTTP(err)
	out := envelope(status, data, reqID)
	out.Code = w.Code
	out.Error = w.Message
	return status, out
}
