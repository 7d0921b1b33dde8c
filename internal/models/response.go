package models

import (
	"net/http"
	"time"
)

// ResponseModel Base response structure that can be reused
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// ResponseCurrentTime is the current time in epoch milliseconds.
func ResponseCurrentTime() int64 {
	return time.Now().UnixMilli()
}

// NewResponse builds a response envelope with the given status code, data and text.
func NewResponse(code int, data interface{}, text string) ResponseModel {
	return ResponseModel{
		Code:        code,
		CurrentTime: ResponseCurrentTime(),
		Data:        data,
		Text:        text,
		Version:     2,
	}
}

// NewOKResponse wraps data in a 200 envelope.
func NewOKResponse(data interface{}) ResponseModel {
	return NewResponse(http.StatusOK, data, "OK")
}

// NewEntryResponse wraps a single entry: {"data": {"entry": ...}}.
func NewEntryResponse(entry interface{}) ResponseModel {
	return NewOKResponse(map[string]interface{}{
		"entry": entry,
	})
}

// NewListResponse wraps a list: {"data": {"list": [...]}}.
func NewListResponse(list interface{}) ResponseModel {
	return NewOKResponse(map[string]interface{}{
		"list": list,
	})
}
