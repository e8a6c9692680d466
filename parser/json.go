package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// JSONParser recursively decomposes a JSON document into one chunk per
// leaf value, each carrying its full path so the original structure can
// still be read off the chunk in isolation.
type JSONParser struct{}

func (p *JSONParser) SupportedFormats() []string { return []string{"json"} }

func (p *JSONParser) Parse(ctx context.Context, path string) (*ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading JSON: %w", err)
	}

	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		if serr, ok := err.(*json.SyntaxError); ok {
			return nil, fmt.Errorf("%w: byte offset %d: %v", ErrParseFailed, serr.Offset, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	var sections []Section
	walkJSONLeaves("$", value, &sections)

	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: no leaf values found in JSON", ErrExtractionFailed)
	}

	return &ParseResult{
		Sections: sections,
		Method:   "native",
	}, nil
}

// walkJSONLeaves appends one Section per scalar leaf reachable from value,
// with heading set to the dotted/bracketed path to that leaf.
func walkJSONLeaves(path string, value interface{}, out *[]Section) {
	switch v := value.(type) {
	case map[string]interface{}:
		if len(v) == 0 {
			*out = append(*out, Section{Heading: path, Content: "{}", Type: "paragraph"})
			return
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walkJSONLeaves(path+"."+k, v[k], out)
		}
	case []interface{}:
		if len(v) == 0 {
			*out = append(*out, Section{Heading: path, Content: "[]", Type: "paragraph"})
			return
		}
		for i, item := range v {
			walkJSONLeaves(path+"["+strconv.Itoa(i)+"]", item, out)
		}
	default:
		*out = append(*out, Section{
			Heading: path,
			Content: path + ": " + formatJSONScalar(v),
			Type:    "paragraph",
		})
	}
}

func formatJSONScalar(v interface{}) string {
	if v == nil {
		return "null"
	}
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}
