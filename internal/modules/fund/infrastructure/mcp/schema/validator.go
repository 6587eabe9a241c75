package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	invopopSchema "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validator 由 Go 参数结构体反射生成并预编译的 JSON Schema
// 对外公布的 inputSchema 保持原样，这里只负责更严格的校验（如正整数）
type Validator struct {
	schema *jsonschema.Schema
}

// Generate 从参数结构体生成 JSON Schema 文本
// 允许额外字段：未声明的参数直接忽略
func Generate(params interface{}) (string, error) {
	reflector := invopopSchema.Reflector{
		Anonymous:                 true,
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	b, err := json.Marshal(reflector.Reflect(params))
	if err != nil {
		return "", fmt.Errorf("marshal schema: %w", err)
	}
	return string(b), nil
}

// New 为参数结构体生成并编译校验器
func New(params interface{}) (*Validator, error) {
	src, err := Generate(params)
	if err != nil {
		return nil, err
	}
	compiled, err := jsonschema.CompileString("", src)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// MustNew 启动期使用，schema 来自代码常量，出错即编程错误
func MustNew(params interface{}) *Validator {
	v, err := New(params)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate 校验参数；入参先经 JSON 往返，统一成 float64/map/slice 等标准类型
func (v *Validator) Validate(args interface{}) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("arguments are not JSON encodable: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("arguments are not valid JSON: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("%s", describe(err))
	}
	return nil
}

// describe 把校验错误展开成 "path: message" 列表
func describe(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	var details []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			details = append(details, loc+": "+e.Message)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return strings.Join(details, "; ")
}

// Decode 校验通过后把参数解码到目标结构体
func Decode(args map[string]interface{}, out interface{}) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode arguments: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode arguments: %w", err)
	}
	return nil
}
