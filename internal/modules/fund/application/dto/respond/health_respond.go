package respond

// HealthRespond 健康检查响应
type HealthRespond struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Version string `json:"version"`
	Mode    string `json:"mode"`
}
