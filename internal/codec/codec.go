// Package codec encodes the persisted task collection and mode flag.
//
// The collection blob is a JSON object mapping task ID to
// {"text": string, "work": bool, "completed": bool}; keys keep collection order.
// The mode blob is a JSON boolean, true meaning Work.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"todos/internal/service"
)

// ErrMalformed is wrapped by every decode error.
var ErrMalformed = errors.New("malformed data")

// EncodeTasks serializes the collection in collection order.
func EncodeTasks(c *service.Collection) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range c.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(t.ID)
		if err != nil {
			return nil, fmt.Errorf("encode id %q: %w", t.ID, err)
		}
		entry, err := encodeEntry(t)
		if err != nil {
			return nil, fmt.Errorf("encode task %s: %w", t.ID, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(entry)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeEntry(t service.Task) (string, error) {
	entry, err := sjson.Set("{}", "text", t.Text)
	if err != nil {
		return "", err
	}
	if entry, err = sjson.Set(entry, "work", bool(t.Mode)); err != nil {
		return "", err
	}
	return sjson.Set(entry, "completed", t.Completed)
}

// DecodeTasks parses a collection blob, keeping document key order.
// Empty input and JSON null yield an empty collection.
func DecodeTasks(data []byte) (*service.Collection, error) {
	c := service.NewCollection()
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return c, nil
	}
	if !gjson.ValidBytes(trimmed) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	doc := gjson.ParseBytes(trimmed)
	if doc.Type == gjson.Null {
		return c, nil
	}
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: expected object, got %s", ErrMalformed, doc.Type)
	}

	var decodeErr error
	doc.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			decodeErr = fmt.Errorf("%w: task %s is not an object", ErrMalformed, key.String())
			return false
		}
		text := value.Get("text")
		if text.Exists() && text.Type != gjson.String {
			decodeErr = fmt.Errorf("%w: task %s has non-string text", ErrMalformed, key.String())
			return false
		}
		c.Put(service.Task{
			ID:        key.String(),
			Text:      text.String(),
			Mode:      service.Mode(value.Get("work").Bool()),
			Completed: value.Get("completed").Bool(),
		})
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return c, nil
}

// EncodeMode serializes the mode flag.
func EncodeMode(m service.Mode) string {
	if m == service.Work {
		return "true"
	}
	return "false"
}

// DecodeMode parses a mode blob.
func DecodeMode(s string) (service.Mode, error) {
	s = strings.TrimSpace(s)
	if !gjson.Valid(s) {
		return service.Work, fmt.Errorf("%w: invalid mode %q", ErrMalformed, s)
	}
	switch gjson.Parse(s).Type {
	case gjson.True:
		return service.Work, nil
	case gjson.False:
		return service.Travel, nil
	}
	return service.Work, fmt.Errorf("%w: invalid mode %q", ErrMalformed, s)
}

// Pretty indents a JSON blob for display.
func Pretty(data []byte) []byte {
	return pretty.PrettyOptions(data, &pretty.Options{
		Width:    80,
		Prefix:   "",
		Indent:   "  ",
		SortKeys: false,
	})
}
