package errors

// ErrorCode identifies an error class in logs and trigger-server responses.
type ErrorCode int32

const (
	ErrorCode_INTERNAL ErrorCode = iota
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_MISSING_CONFIGURATION
	ErrorCode_NOT_FOUND
	ErrorCode_JOB_UNKNOWN
	ErrorCode_JOB_ALREADY_RUNNING
	ErrorCode_JOB_ABORTED
	ErrorCode_DOCUMENT_SERVICE_FAILED
	ErrorCode_CHAT_SERVICE_FAILED
	ErrorCode_CALENDAR_SERVICE_FAILED
	ErrorCode_GENERATION_FAILED
	ErrorCode_GENERATION_EMPTY
	ErrorCode_STORAGE_FAILED
	ErrorCode_CACHE_FAILED
	ErrorCode_DB_CONNECTION_FAILED
	ErrorCode_DB_QUERY_FAILED
	ErrorCode_UNAUTHENTICATED
	ErrorCode_AUTH_INVALID_TOKEN
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_INTERNAL:                "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:        "INVALID_ARGUMENT",
	ErrorCode_MISSING_CONFIGURATION:   "MISSING_CONFIGURATION",
	ErrorCode_NOT_FOUND:               "NOT_FOUND",
	ErrorCode_JOB_UNKNOWN:             "JOB_UNKNOWN",
	ErrorCode_JOB_ALREADY_RUNNING:     "JOB_ALREADY_RUNNING",
	ErrorCode_JOB_ABORTED:             "JOB_ABORTED",
	ErrorCode_DOCUMENT_SERVICE_FAILED: "DOCUMENT_SERVICE_FAILED",
	ErrorCode_CHAT_SERVICE_FAILED:     "CHAT_SERVICE_FAILED",
	ErrorCode_CALENDAR_SERVICE_FAILED: "CALENDAR_SERVICE_FAILED",
	ErrorCode_GENERATION_FAILED:       "GENERATION_FAILED",
	ErrorCode_GENERATION_EMPTY:        "GENERATION_EMPTY",
	ErrorCode_STORAGE_FAILED:          "STORAGE_FAILED",
	ErrorCode_CACHE_FAILED:            "CACHE_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:    "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:         "DB_QUERY_FAILED",
	ErrorCode_UNAUTHENTICATED:         "UNAUTHENTICATED",
	ErrorCode_AUTH_INVALID_TOKEN:      "AUTH_INVALID_TOKEN",
}

func (c ErrorCode) String() string {
	if s, ok := errorCodeNames[c]; ok {
		return s
	}
	return "UNKNOWN"
}
