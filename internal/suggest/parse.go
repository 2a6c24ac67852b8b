package suggest

import (
	"fmt"

	"github.com/bmispelon/noyel/internal/core/models"
	"github.com/tidwall/gjson"
)

// ParseSuggestions decodes a search endpoint body. The body must be a JSON
// array whose items are strings or objects with a string "label".
func ParseSuggestions(body []byte) (models.SuggestionList, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrMalformedResponse)
	}

	result := gjson.ParseBytes(body)
	if !result.IsArray() {
		return nil, fmt.Errorf("%w: expected an array, got %s", ErrMalformedResponse, result.Type)
	}

	list := make(models.SuggestionList, 0)
	var parseErr error
	index := 0
	result.ForEach(func(_, item gjson.Result) bool {
		switch {
		case item.Type == gjson.String:
			list = append(list, item.Str)
		case item.IsObject():
			label := item.Get("label")
			if label.Type != gjson.String {
				parseErr = fmt.Errorf("%w: item %d has no string label", ErrMalformedResponse, index)
				return false
			}
			list = append(list, label.Str)
		default:
			parseErr = fmt.Errorf("%w: item %d is %s", ErrMalformedResponse, index, item.Type)
			return false
		}
		index++
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return list, nil
}
