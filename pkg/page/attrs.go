package page

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ryferguson/cornwand/pkg/wand"
)

// decodeAttrs decodes an attribute set, preserving the member order of JSON
// objects.
func decodeAttrs(raw json.RawMessage, path string) (wand.Attrs, error) {
	switch firstByte(raw) {
	case '{':
		return decodeAttrObject(raw, path, nil)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, errorAt(path, err)
		}
		attrs := make(wand.Attrs, 0, len(items))
		for i, item := range items {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			if firstByte(item) == '{' {
				var err error
				if attrs, err = decodeAttrObject(item, itemPath, attrs); err != nil {
					return nil, err
				}
				continue
			}
			v, err := scalar(item)
			if err != nil {
				return nil, errorAt(itemPath, err)
			}
			attrs = append(attrs, wand.Flag(v))
		}
		return attrs, nil
	default:
		return nil, errorAt(path, fmt.Errorf("attrs must be an object or an array"))
	}
}

// decodeAttrObject walks the object token by token so that member order
// survives, appending named attributes to attrs.
func decodeAttrObject(raw json.RawMessage, path string, attrs wand.Attrs) (wand.Attrs, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	if _, err := dec.Token(); err != nil {
		return nil, errorAt(path, err)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errorAt(path, err)
		}
		name, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, errorAt(path+"."+name, err)
		}
		v, err := scalar(value)
		if err != nil {
			return nil, errorAt(path+"."+name, err)
		}
		attrs = attrs.Set(name, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, errorAt(path, err)
	}
	return attrs, nil
}

// scalar decodes a JSON scalar into a value wand can stringify. Numbers
// keep their literal text.
func scalar(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case nil, string, bool:
		return x, nil
	case json.Number:
		return x.String(), nil
	default:
		return nil, ErrBadAttr
	}
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
