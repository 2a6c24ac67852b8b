package suggest

import (
	"testing"

	"github.com/bmispelon/noyel/internal/core/models"
	"github.com/stretchr/testify/assert"
)

func TestParseSuggestions(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    models.SuggestionList
		wantErr bool
	}{
		{
			name: "strings keep order and duplicates",
			body: `["Annie", "Anna", "Annie"]`,
			want: models.SuggestionList{"Annie", "Anna", "Annie"},
		},
		{
			name: "empty array",
			body: `[]`,
			want: models.SuggestionList{},
		},
		{
			name: "labeled items",
			body: `[{"label": "Anna", "count": 3}, "Annie"]`,
			want: models.SuggestionList{"Anna", "Annie"},
		},
		{
			name: "escaped strings",
			body: `["Zoé", "O\"Neil"]`,
			want: models.SuggestionList{"Zoé", `O"Neil`},
		},
		{
			name:    "object body",
			body:    `{"suggestions": ["Anna"]}`,
			wantErr: true,
		},
		{
			name:    "number item",
			body:    `["Anna", 42]`,
			wantErr: true,
		},
		{
			name:    "label is not a string",
			body:    `[{"label": 1}]`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			body:    `["Anna"`,
			wantErr: true,
		},
		{
			name:    "empty body",
			body:    ``,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSuggestions([]byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedResponse)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
