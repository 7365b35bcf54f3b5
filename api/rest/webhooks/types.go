package webhooks

type CallbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type StatusResponse struct {
	Message string `json:"message"`
}
