package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	EmailAlreadyRegisteredCode     = 1001
	EmailAlreadyRegisteredMessage  = "email already registered"
	InvalidCredentialsCode         = 1002
	InvalidCredentialsMessage      = "invalid username or password"
	InvalidVerificationCodeCode    = 1003
	InvalidVerificationCodeMessage = "invalid verification code"
	VerificationCodeExpiredCode    = 1004
	VerificationCodeExpiredMessage = "verification code expired"
	UsernameTakenCode              = 1005
	UsernameTakenMessage           = "username already taken"
	EmailDeliveryFailedCode        = 1006
	EmailDeliveryFailedMessage     = "verification email could not be delivered"

	ExpenseNotFoundCode    = 2001
	ExpenseNotFoundMessage = "expense not found"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	errorStruct := &ErrorStruct{
		ErrorCode:    UnknownErrorCode,
		ErrorMessage: UnknownErrorMessage,
	}

	switch code {
	case EmailAlreadyRegisteredCode:
		errorStruct.ErrorCode = EmailAlreadyRegisteredCode
		errorStruct.ErrorMessage = EmailAlreadyRegisteredMessage
	case InvalidCredentialsCode:
		errorStruct.ErrorCode = InvalidCredentialsCode
		errorStruct.ErrorMessage = InvalidCredentialsMessage
	case InvalidVerificationCodeCode:
		errorStruct.ErrorCode = InvalidVerificationCodeCode
		errorStruct.ErrorMessage = InvalidVerificationCodeMessage
	case VerificationCodeExpiredCode:
		errorStruct.ErrorCode = VerificationCodeExpiredCode
		errorStruct.ErrorMessage = VerificationCodeExpiredMessage
	case UsernameTakenCode:
		errorStruct.ErrorCode = UsernameTakenCode
		errorStruct.ErrorMessage = UsernameTakenMessage
	case EmailDeliveryFailedCode:
		errorStruct.ErrorCode = EmailDeliveryFailedCode
		errorStruct.ErrorMessage = EmailDeliveryFailedMessage
	case ExpenseNotFoundCode:
		errorStruct.ErrorCode = ExpenseNotFoundCode
		errorStruct.ErrorMessage = ExpenseNotFoundMessage
	}

	return errorStruct
}
