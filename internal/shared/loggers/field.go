package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"
	FieldHttpRoute  = "http_route"
	FieldUserAgent  = "user_agent"

	FieldDuration      = "duration"
	FieldRequestID     = "request_id"
	FieldErrorStack    = "error_stack"
	FieldErrorCode     = "error_code"
	FieldErrorCategory = "error_category"

	FieldUsername    = "username"
	FieldViewMode    = "view_mode"
	FieldBatchKeys   = "batch_keys"
	FieldBatchViews  = "batch_views"
	FieldApplied     = "applied"
	FieldMissing     = "missing"
	FieldFailed      = "failed"
	FieldStoreDriver = "store_driver"
)
