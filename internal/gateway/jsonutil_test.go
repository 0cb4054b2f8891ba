package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `[1,2]`, `[1,2]`},
		{"json fence", "```json\n[1,2]\n```", `[1,2]`},
		{"bare fence", "```\n[1,2]\n```", `[1,2]`},
		{"whitespace", "  \n[1,2]\t", `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanJSON(tt.input))
		})
	}
}

func TestDecodeArray(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{"plain", `[1,2,3]`, []int{1, 2, 3}, false},
		{"prose around", "Sure! [1, 2] Enjoy.", []int{1, 2}, false},
		{"trailing comma", "[1, 2,\n]", []int{1, 2}, false},
		{"wrapped", `{"values": [4, 5]}`, []int{4, 5}, false},
		{"two arrays", `{"a": [1], "b": [2]}`, nil, true},
		{"object without array", `{"a": 1}`, nil, true},
		{"not json", "no idea", nil, true},
		{"bracketed prose first", "See [note]: [7, 8]", []int{7, 8}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			err := decodeArray(tt.input, &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type namedRecord struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func TestDecodeArrayKeepsValidStrings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []namedRecord
	}{
		{
			"comma brace inside string",
			`[{"name":"Pea soup","description":"Use leftovers (peas, }"}]`,
			[]namedRecord{{Name: "Pea soup", Description: "Use leftovers (peas, }"}},
		},
		{
			"comma bracket inside string",
			"```json\n" + `[{"name":"Stew","description":"Season [salt, ]"}]` + "\n```",
			[]namedRecord{{Name: "Stew", Description: "Season [salt, ]"}},
		},
		{
			"repair leaves strings alone",
			`[{"name":"a, ]","description":"b, }",},]`,
			[]namedRecord{{Name: "a, ]", Description: "b, }"}},
		},
		{
			"escaped quote before comma",
			`[{"name":"say \", }","description":"x"},]`,
			[]namedRecord{{Name: `say ", }`, Description: "x"}},
		},
		{
			"bracketed prose before objects",
			`Here you go, see [note]: [{"name":"Milk","description":"d"}]`,
			[]namedRecord{{Name: "Milk", Description: "d"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []namedRecord
			require.NoError(t, decodeArray(tt.input, &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripTrailingCommas(t *testing.T) {
	assert.Equal(t, `[1, 2]`, stripTrailingCommas(`[1, 2,]`))
	assert.Equal(t, "{\"a\": 1\n}", stripTrailingCommas("{\"a\": 1,\n}"))
	assert.Equal(t, `["x, ]"]`, stripTrailingCommas(`["x, ]"]`))
}

func TestSchemaRendersRequiredFields(t *testing.T) {
	s := ScannedItemsSchema.String()
	assert.Contains(t, s, `"type":"array"`)
	assert.Contains(t, s, `"required":["name","quantity","expiryDate","category","fragility"]`)
	assert.Contains(t, InsightsSchema.String(), `"enum":["waste","suggestion","tip"]`)
}
