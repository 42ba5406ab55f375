package dto

// APIResponse is the envelope of every endpoint: a single "response" field holding
// either a message string, a field error map, or a serialized object/list.
type APIResponse struct {
	Response interface{} `json:"response"`
}

// Message builds a message-only response
func Message(msg string) APIResponse {
	return APIResponse{Response: msg}
}

// Data wraps a serialized object or list
func Data(data interface{}) APIResponse {
	return APIResponse{Response: data}
}
