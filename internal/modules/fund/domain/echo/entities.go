package echo

// Params fund.echo 入参
type Params struct {
	Message string `json:"message"`
}
