package types

// Status is the outcome part of a Response.
type Status struct {
	Code        int
	Message     string
	Description string
}

var (
	StatusOK = Status{
		Code:    200,
		Message: "OK",
	}
	StatusBadRequest = Status{
		Code:        400,
		Message:     "Bad Request",
		Description: "Wrong, incorrect request.",
	}
	StatusUnauthorized = Status{
		Code:        401,
		Message:     "Unauthorized",
		Description: "Failed to create a connection. Please check the data and route to the system or config settings.",
	}
	StatusNotImplemented = Status{
		Code:        501,
		Message:     "Not Implemented",
		Description: "The requested report option is not implemented.",
	}
	StatusGatewayTimeout = Status{
		Code:        504,
		Message:     "Naumen Does Not Answer",
		Description: "Remote end closed connection without response",
	}
)

type Response struct {
	StatusCode    int         `json:"status_code"`
	StatusMessage string      `json:"status_message"`
	Description   string      `json:"description"`
	Content       interface{} `json:"content"`
}

func NewResponse(status Status, content interface{}) *Response {
	if content == nil {
		content = []interface{}{}
	}

	return &Response{
		StatusCode:    status.Code,
		StatusMessage: status.Message,
		Description:   status.Description,
		Content:       content,
	}
}

func (r *Response) OK() bool {
	return r.StatusCode == StatusOK.Code
}
