package models

import "time"

// CurrentTimeModel Current time specific model
type CurrentTimeModel struct {
	ReadableTime string `json:"readableTime"`
	Time         int64  `json:"time"`
}

// NewCurrentTimeData creates a CurrentTimeModel based on a provided Time
func NewCurrentTimeData(t time.Time) CurrentTimeModel {
	return CurrentTimeModel{
		ReadableTime: t.Format(time.RFC3339),
		Time:         t.UnixNano() / int64(time.Millisecond),
	}
}
