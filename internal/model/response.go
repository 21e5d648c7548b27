package model

// Response is the standard success envelope: {"status":"success","data":{...}}.
type Response struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// Success wraps data in the success envelope.
func Success(data interface{}) Response {
	return Response{Status: "success", Data: data}
}

// FailResponse is the envelope for client-caused failures and server errors.
// Status is "fail" for 4xx outcomes and "error" for unexpected 5xx ones.
type FailResponse struct {
	Status string     `json:"status"`
	Data   FailDetail `json:"data"`
}

// FailDetail carries the stable error name and the human-readable message.
type FailDetail struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}
