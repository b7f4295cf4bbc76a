package common

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP status dùng trong response và trong Error.StatusCode
const (
	StatusOK                  = http.StatusOK
	StatusCreated             = http.StatusCreated
	StatusBadRequest          = http.StatusBadRequest
	StatusUnauthorized        = http.StatusUnauthorized
	StatusNotFound            = http.StatusNotFound
	StatusConflict            = http.StatusConflict
	StatusTooManyRequests     = http.StatusTooManyRequests
	StatusInternalServerError = http.StatusInternalServerError
	StatusBadGateway          = http.StatusBadGateway
	StatusServiceUnavailable  = http.StatusServiceUnavailable
)

// Message trả về cho client
const (
	MsgSuccess         = "Thao tác thành công"
	MsgCreated         = "Tạo mới thành công"
	MsgUnauthorized    = "Vui lòng đăng nhập"
	MsgTooManyRequests = "Quá nhiều yêu cầu, vui lòng thử lại sau"
	MsgInternalError   = "Lỗi hệ thống"
	MsgValidationError = "Dữ liệu không hợp lệ"

	// MsgGenerationFailed được lưu vào kịch bản khi lỗi sinh nội dung không có message
	MsgGenerationFailed = "Generation failed"
)

// ErrorCode là mã lỗi ổn định mà client có thể dựa vào (trường "code" trong response)
type ErrorCode struct {
	Code        string // ví dụ AUTH_001
	Category    string
	SubCategory string
	Description string
}

func newCode(code, category, sub, description string) ErrorCode {
	return ErrorCode{Code: code, Category: category, SubCategory: sub, Description: description}
}

// Bảng mã lỗi. Tiền tố: SYS hệ thống, AUTH xác thực, VAL dữ liệu vào, DB cơ sở dữ liệu,
// BIZ nghiệp vụ kịch bản, AI mô hình ngôn ngữ/TTS, STO kho âm thanh.
var (
	ErrCodeInternalServer = newCode("SYS_001", "System", "Internal", "Lỗi hệ thống nội bộ")

	ErrCodeAuth            = newCode("AUTH", "Authentication", "General", "Lỗi xác thực chung")
	ErrCodeAuthToken       = newCode("AUTH_001", "Authentication", "Token", "Token thiếu, sai hoặc hết hạn")
	ErrCodeAuthCredentials = newCode("AUTH_002", "Authentication", "Credentials", "Email hoặc mật khẩu không đúng")

	ErrCodeValidationInput  = newCode("VAL_001", "Validation", "Input", "Dữ liệu đầu vào vi phạm ràng buộc")
	ErrCodeValidationFormat = newCode("VAL_002", "Validation", "Format", "Không đọc được dữ liệu")

	ErrCodeDatabase           = newCode("DB", "Database", "General", "Lỗi cơ sở dữ liệu chung")
	ErrCodeDatabaseConnection = newCode("DB_001", "Database", "Connection", "Không kết nối được MongoDB")
	ErrCodeDatabaseQuery      = newCode("DB_002", "Database", "Query", "Không tìm thấy hoặc trùng dữ liệu")

	ErrCodeBusinessState     = newCode("BIZ_001", "Business", "State", "Chuyển trạng thái kịch bản không hợp lệ")
	ErrCodeBusinessOperation = newCode("BIZ_002", "Business", "Operation", "Thao tác không áp dụng cho kịch bản hiện tại")
	ErrCodeBusinessRateLimit = newCode("BIZ_003", "Business", "RateLimit", "Vượt giới hạn tạo kịch bản")

	ErrCodeAIGeneration = newCode("AI_001", "AI", "Generation", "Mô hình ngôn ngữ trả lỗi hoặc nội dung rỗng")
	ErrCodeAISpeech     = newCode("AI_002", "AI", "Speech", "Dịch vụ TTS trả lỗi")

	ErrCodeStorage = newCode("STO_001", "Storage", "Object", "Không đọc/ghi được file âm thanh")
)

// Error là lỗi nghiệp vụ mang sẵn HTTP status; handler trả nó về client nguyên dạng
type Error struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	Details    any // thông tin thêm cho client, hoặc lỗi gốc
}

func (e *Error) Error() string {
	return e.Message
}

// Is so khớp theo mã lỗi và message, nên errors.Is(err, ErrNotFound) vẫn đúng khi err bị bọc bằng %w
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code.Code == other.Code.Code && e.Message == other.Message
}

// Unwrap trả về Details nếu đó là một error
func (e *Error) Unwrap() error {
	cause, _ := e.Details.(error)
	return cause
}

// NewError tạo *Error dưới dạng error
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{Code: code, Message: message, StatusCode: statusCode, Details: details}
}

// Xác thực
var (
	ErrInvalidCredentials = NewError(ErrCodeAuthCredentials, "Thông tin đăng nhập không chính xác", StatusUnauthorized, nil)
	ErrEmailTaken         = NewError(ErrCodeAuthCredentials, "Email đã được sử dụng", StatusConflict, nil)
	ErrUserNotFound       = NewError(ErrCodeAuthCredentials, "Không tìm thấy thông tin người dùng", StatusNotFound, nil)
	ErrTokenMissing       = NewError(ErrCodeAuthToken, "Thiếu token xác thực", StatusUnauthorized, nil)
	ErrTokenInvalid       = NewError(ErrCodeAuthToken, "Token không hợp lệ", StatusUnauthorized, nil)
	ErrTokenExpired       = NewError(ErrCodeAuthToken, "Phiên đăng nhập đã hết hạn", StatusUnauthorized, nil)
)

// Dữ liệu vào
var (
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Định dạng dữ liệu không hợp lệ", StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Thiếu thông tin bắt buộc", StatusBadRequest, nil)
	ErrNoChanges     = NewError(ErrCodeValidationInput, "Không có thay đổi nào", StatusBadRequest, nil)
)

// Cơ sở dữ liệu
var (
	ErrNotFound            = NewError(ErrCodeDatabaseQuery, "Không tìm thấy dữ liệu", StatusNotFound, nil)
	ErrMongoDuplicate      = NewError(ErrCodeDatabaseQuery, "Dữ liệu trùng lặp trong MongoDB", StatusConflict, nil)
	ErrDatabaseUnavailable = NewError(ErrCodeDatabaseConnection, "MongoDB không phản hồi", StatusServiceUnavailable, nil)
)

// Kịch bản và giọng đọc
var (
	ErrInvalidState     = NewError(ErrCodeBusinessState, "Trạng thái không hợp lệ", StatusConflict, nil)
	ErrRateLimited      = NewError(ErrCodeBusinessRateLimit, MsgTooManyRequests, StatusTooManyRequests, nil)
	ErrScriptExists     = NewError(ErrCodeBusinessOperation, "Dự án đã có kịch bản, hãy tạo lại kịch bản hiện có", StatusConflict, nil)
	ErrScriptEmpty      = NewError(ErrCodeBusinessOperation, "Cần tạo nội dung kịch bản trước khi tạo giọng đọc", StatusBadRequest, nil)
	ErrVoiceUnsupported = NewError(ErrCodeValidationInput, "Giọng đọc không được hỗ trợ", StatusBadRequest, nil)
	ErrVoiceNotFound    = NewError(ErrCodeDatabaseQuery, "Kịch bản chưa có giọng đọc", StatusNotFound, nil)
)

// NewGenerationError bọc lỗi từ mô hình ngôn ngữ, giữ nguyên message để client hiển thị
func NewGenerationError(message string, cause error) error {
	return NewError(ErrCodeAIGeneration, message, StatusBadGateway, cause)
}

// NewSpeechError bọc lỗi từ dịch vụ tổng hợp giọng nói
func NewSpeechError(cause error) error {
	return NewError(ErrCodeAISpeech, "Không thể tổng hợp giọng đọc", StatusBadGateway, cause)
}

// NewStorageError bọc lỗi từ kho lưu trữ âm thanh
func NewStorageError(cause error) error {
	return NewError(ErrCodeStorage, "Lỗi lưu trữ âm thanh", StatusInternalServerError, cause)
}

// ConvertMongoError đổi lỗi của driver sang *Error; lỗi đã là *Error thì giữ nguyên
func ConvertMongoError(err error) error {
	var appErr *Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrMongoDuplicate
	case mongo.IsTimeout(err), mongo.IsNetworkError(err), errors.Is(err, context.DeadlineExceeded):
		return NewError(ErrCodeDatabaseConnection, ErrDatabaseUnavailable.Error(), StatusServiceUnavailable, err)
	}
	return NewError(ErrCodeDatabase, "Lỗi tương tác với cơ sở dữ liệu", StatusInternalServerError, err)
}
