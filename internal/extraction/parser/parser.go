package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/internal/extraction/domain"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/pkg/logger"
)

// Markdown fence markers models wrap JSON in despite being told not to.
// "```json" must be stripped before the bare fence.
var fenceMarkers = []string{"```json", "```"}

// StripCodeFences trims raw and removes every fence marker, wherever it appears
func StripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	for _, m := range fenceMarkers {
		cleaned = strings.ReplaceAll(cleaned, m, "")
	}
	return strings.TrimSpace(cleaned)
}

// CleanJSONOutput turns the model's reply into the three extraction fields.
// Missing keys read as "". When the reply is not a JSON object, the raw
// text and the parse error are logged and all fields are empty. It never fails.
func CleanJSONOutput(raw string, log *logger.Logger) domain.Fields {
	var fields domain.Fields

	// numbers stay json.Number so they keep their original digits
	dec := json.NewDecoder(strings.NewReader(StripCodeFences(raw)))
	dec.UseNumber()

	var parsed map[string]interface{}
	err := dec.Decode(&parsed)
	if err == nil {
		err = expectEOF(dec)
	}
	if err != nil {
		if log != nil {
			log.Debug().Err(err).Str("raw_result", raw).Msg("failed to parse model output as JSON")
		}
		return fields
	}
	// "null" decodes into a nil map without error
	if parsed == nil {
		if log != nil {
			log.Debug().Str("raw_result", raw).Msg("model output is not a JSON object")
		}
		return fields
	}

	for _, name := range domain.FieldNames {
		fields.Set(name, stringify(parsed[name]))
	}
	return fields
}

// stringify renders a decoded JSON value as field text
func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}

// expectEOF rejects anything after the first JSON value
func expectEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}
