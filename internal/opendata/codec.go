package opendata

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jinsol-dev/busango/internal/models"
)

// resultSuccess is the success sentinel in the data.go.kr response header.
const resultSuccess = "00"

// APIError is a non-success result code reported by an upstream service.
// The message is the upstream resultMsg when one was supplied.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("opendata: upstream result %q: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("opendata: upstream result %q", e.Code)
}

// item is one repeated <item> element with its direct child fields
// flattened. Typed accessors below are the coercion table: a field is
// numeric only where an endpoint mapping says so.
type item map[string]string

// decodeEnvelope parses a data.go.kr response body: a status header
// (resultCode/resultMsg) plus zero or more repeated <item> elements. The two
// services nest these differently, so the decoder matches elements by local
// name wherever they appear, the way the original client queried the DOM.
func decodeEnvelope(r io.Reader) ([]item, error) {
	d := xml.NewDecoder(r)

	var code, msg string
	var items []item

	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("opendata: decode response: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "resultCode":
			if err := d.DecodeElement(&code, &start); err != nil {
				return nil, fmt.Errorf("opendata: decode resultCode: %w", err)
			}
		case "resultMsg":
			if err := d.DecodeElement(&msg, &start); err != nil {
				return nil, fmt.Errorf("opendata: decode resultMsg: %w", err)
			}
		case "item":
			it, err := decodeItem(d)
			if err != nil {
				return nil, fmt.Errorf("opendata: decode item: %w", err)
			}
			items = append(items, it)
		}
	}

	if strings.TrimSpace(code) != resultSuccess {
		return nil, &APIError{Code: strings.TrimSpace(code), Message: strings.TrimSpace(msg)}
	}
	return items, nil
}

// decodeItem collects the direct children of an open <item> element.
func decodeItem(d *xml.Decoder) (item, error) {
	it := item{}
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var value string
			if err := d.DecodeElement(&value, &t); err != nil {
				return nil, err
			}
			it[t.Name.Local] = strings.TrimSpace(value)
		case xml.EndElement:
			return it, nil
		}
	}
}

func (it item) text(key string) string {
	return it[key]
}

func (it item) float(key string) float64 {
	v, err := strconv.ParseFloat(it[key], 64)
	if err != nil {
		return 0
	}
	return v
}

func (it item) int(key string) int {
	v, err := strconv.Atoi(it[key])
	if err != nil {
		return 0
	}
	return v
}

// flag interprets the 1/0 markers the BIMS feed uses for booleans, which
// arrive as "1", "0", or empty.
func (it item) flag(key string) bool {
	v, err := strconv.Atoi(it[key])
	return err == nil && v != 0
}

// minutes preserves the raw token so terminal states like 운행종료 survive
// untouched.
func (it item) minutes(key string) models.Minutes {
	return models.Minutes{Raw: it[key]}
}
