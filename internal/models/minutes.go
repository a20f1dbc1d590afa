package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Terminal states the BIMS feed reports in the minute fields instead of a
// number. They are passed through to clients verbatim, never parsed.
const (
	ArrivalNotRunning = "출발대기"
	ArrivalEnded      = "운행종료"
)

// Minutes holds a BIMS minutes-until-arrival field, which is either a minute
// count or one of the terminal state strings above. The raw token is kept
// as received.
type Minutes struct {
	Raw string
}

func (m Minutes) IsZero() bool {
	return m.Raw == ""
}

// Value returns the minute count when the token is numeric.
func (m Minutes) Value() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(m.Raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (m Minutes) String() string {
	return m.Raw
}

// MarshalJSON emits a number for numeric tokens and a string otherwise, the
// same shape the upstream item fields had after coercion.
func (m Minutes) MarshalJSON() ([]byte, error) {
	if m.Raw == "" {
		return []byte("null"), nil
	}
	if n, ok := m.Value(); ok {
		return json.Marshal(n)
	}
	return json.Marshal(m.Raw)
}

func (m *Minutes) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		m.Raw = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.Raw = s
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	m.Raw = strconv.Itoa(n)
	return nil
}
