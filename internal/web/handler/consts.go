package handler

const (
	// APIPrefix is the base path of the public API route group.
	APIPrefix = "/v1"

	// AdminPrefix is the base path of the admin route group.
	AdminPrefix = APIPrefix + "/admin"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
