package schema

import (
	"encoding/json"
	"testing"

	"FundMCP/internal/modules/fund/domain/echo"
	"FundMCP/internal/modules/fund/domain/knowledge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateEchoSchema(t *testing.T) {
	src, err := Generate(&echo.Params{})
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(src), &doc))
	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, []interface{}{"message"}, doc["required"])
	assert.NotContains(t, doc, "additionalProperties")
}

func TestEchoValidator(t *testing.T) {
	v := MustNew(&echo.Params{})

	tests := []struct {
		name    string
		args    map[string]interface{}
		wantErr bool
	}{
		{name: "valid", args: map[string]interface{}{"message": "hello"}},
		{name: "empty string is valid", args: map[string]interface{}{"message": ""}},
		{name: "extra fields ignored", args: map[string]interface{}{"message": "x", "other": 1}},
		{name: "missing message", args: map[string]interface{}{}, wantErr: true},
		{name: "nil args", args: nil, wantErr: true},
		{name: "number message", args: map[string]interface{}{"message": 42}, wantErr: true},
		{name: "null message", args: map[string]interface{}{"message": nil}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestKnowledgeValidator(t *testing.T) {
	v := MustNew(&knowledge.QueryParams{})

	tests := []struct {
		name    string
		args    map[string]interface{}
		wantErr bool
	}{
		{name: "empty", args: map[string]interface{}{}},
		{name: "all set", args: map[string]interface{}{"kw": "基金", "pageSize": 20, "pageNum": 2}},
		{name: "float integral", args: map[string]interface{}{"pageSize": 10.0}},
		{name: "zero page size", args: map[string]interface{}{"pageSize": 0}, wantErr: true},
		{name: "negative page num", args: map[string]interface{}{"pageNum": -1}, wantErr: true},
		{name: "fractional page size", args: map[string]interface{}{"pageSize": 2.5}, wantErr: true},
		{name: "string page size", args: map[string]interface{}{"pageSize": "10"}, wantErr: true},
		{name: "numeric kw", args: map[string]interface{}{"kw": 1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidationErrorMentionsLocation(t *testing.T) {
	v := MustNew(&knowledge.QueryParams{})
	err := v.Validate(map[string]interface{}{"pageSize": 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/pageSize")
}

func TestValidatorRejectsNonObjectArguments(t *testing.T) {
	v := MustNew(&echo.Params{})

	err := v.Validate("hello")
	require.Error(t, err)
	assert.Equal(t, "/: expected object, but got string", err.Error())

	err = v.Validate([]interface{}{"hello"})
	require.Error(t, err)
	assert.Equal(t, "/: expected object, but got array", err.Error())
}

func TestDecode(t *testing.T) {
	var p knowledge.QueryParams
	require.NoError(t, Decode(map[string]interface{}{"kw": "a", "pageSize": 5.0}, &p))
	assert.Equal(t, knowledge.QueryParams{Kw: "a", PageSize: 5}, p)
}
