package knowledge

const (
	DefaultPageSize = 10
	DefaultPageNum  = 1
)

// QueryParams 知识库查询参数
// 可选字段缺省时为零值，由 WithDefaults 补齐；schema 保证出现时一定为正整数
type QueryParams struct {
	Kw       string `json:"kw,omitempty"`
	PageSize int    `json:"pageSize,omitempty" jsonschema:"minimum=1"`
	PageNum  int    `json:"pageNum,omitempty" jsonschema:"minimum=1"`
}

// WithDefaults 补齐缺省值: kw="", pageSize=10, pageNum=1
func (p QueryParams) WithDefaults() QueryParams {
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageNum <= 0 {
		p.PageNum = DefaultPageNum
	}
	return p
}
