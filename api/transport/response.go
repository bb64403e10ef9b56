package transport

// Envelope is the JSON body shared by every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
}

func NewSuccess(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

func NewError(code, message string) Envelope {
	return Envelope{Success: false, Code: code, Message: message}
}
