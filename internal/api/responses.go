package api

// Result is the uniform envelope returned by mutation endpoints the UI
// calls: {success, data?, error?}.
type Result struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func OK(data interface{}) Result {
	return Result{Success: true, Data: data}
}

func Fail(msg string) Result {
	return Result{Success: false, Error: msg}
}

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
