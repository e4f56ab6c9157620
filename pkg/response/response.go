package response

// Body is the JSON envelope every endpoint returns:
// {"success": bool, "message": string, "data": ...}
type Body struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func Success(data any) Body {
	return Body{Success: true, Data: data}
}

func SuccessMessage(message string, data any) Body {
	return Body{Success: true, Message: message, Data: data}
}

func Message(message string) Body {
	return Body{Success: true, Message: message}
}

func Error(message string) Body {
	return Body{Success: false, Message: message}
}
