package respond

const (
	HttpsCodeSuccess = 0
	HttpsCodeError   = -1

	RespMessageSuccess = "success"
)

// Message is the uniform API response envelope
type Message struct {
	Code           int         `json:"code" example:"0"`
	Message        string      `json:"message" example:"success"`
	ProcessingTime int64       `json:"processingTime" example:"123"`
	Data           interface{} `json:"data"`
}

// Response mirrors Message for swagger annotations
type Response struct {
	Code           int         `json:"code" example:"0"`
	Message        string      `json:"message" example:"success"`
	ProcessingTime int64       `json:"processingTime" example:"123"`
	Data           interface{} `json:"data"`
}

// AuthError marks an authentication failure
type AuthError struct {
	message string
}

func NewAuthError(message string) *AuthError {
	return &AuthError{message: message}
}

func (e *AuthError) Error() string {
	return e.message
}

func RespSuccess(data interface{}, time int64) Message {
	return Message{
		Code:           HttpsCodeSuccess,
		Message:        RespMessageSuccess,
		ProcessingTime: time,
		Data:           data,
	}
}

func RespErr(err error, time int64, code int) Message {
	if code == 0 {
		code = HttpsCodeError
	}
	return Message{
		Code:           code,
		Message:        err.Error(),
		ProcessingTime: time,
		Data:           nil,
	}
}
