package models

import "time"

// ResponseModel Base response structure that can be reused
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// ResponseCurrentTime returns the current time in milliseconds for response
// envelopes.
func ResponseCurrentTime() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// ListData wraps a list payload.
type ListData struct {
	List interface{} `json:"list"`
}

// EntryData wraps a single-entry payload.
type EntryData struct {
	Entry interface{} `json:"entry"`
}

// NewOKResponse creates a successful response with the provided data.
func NewOKResponse(data interface{}) ResponseModel {
	return ResponseModel{
		Code:        200,
		CurrentTime: ResponseCurrentTime(),
		Data:        data,
		Text:        "OK",
		Version:     2,
	}
}

// NewListResponse creates a successful response wrapping a list payload.
func NewListResponse(list interface{}) ResponseModel {
	return NewOKResponse(ListData{List: list})
}

// NewEntryResponse creates a successful response wrapping a single entry.
func NewEntryResponse(entry interface{}) ResponseModel {
	return NewOKResponse(EntryData{Entry: entry})
}
