package domain

// Field names the model is asked to return. They are also the JSON keys of a
// successful response.
const (
	FieldOwnerSignature     = "OWNER SIGNATURE"
	FieldStructuralEngineer = "STRUCTURAL ENGINEER"
	FieldRegisteredEngineer = "REGISTERED ENGINEER"
)

// FieldNames lists the extracted fields in prompt order
var FieldNames = []string{FieldOwnerSignature, FieldStructuralEngineer, FieldRegisteredEngineer}

// User-facing messages
const (
	MessageSuccess        = "Successfully analyzed the image"
	MessageInvalidImage   = "I don't see a valid image. Please upload a supported image file (JPG, PNG, GIF, BMP, WEBP, or TIFF)."
	MessageEncodeFailed   = "Failed to convert the image into base64 format"
	MessageEmptyFilePath  = "File path cannot be empty"
	MessageInvalidRequest = "invalid JSON body"
)

// Status codes carried inside the response body
const (
	StatusCodeOK         = 200
	StatusCodeBadRequest = 400
)

// ExtractionRequest is the body accepted by the extraction endpoint
type ExtractionRequest struct {
	FilePath string `json:"file_path" validate:"notblank"`
}

// Fields holds the three extracted values. A value is the verbatim text the
// model matched in the document, or "" when the field was not found.
type Fields struct {
	OwnerSignature     string `json:"OWNER SIGNATURE"`
	StructuralEngineer string `json:"STRUCTURAL ENGINEER"`
	RegisteredEngineer string `json:"REGISTERED ENGINEER"`
}

// Set stores value under one of the FieldNames. Unknown names are ignored.
func (f *Fields) Set(name, value string) {
	switch name {
	case FieldOwnerSignature:
		f.OwnerSignature = value
	case FieldStructuralEngineer:
		f.StructuralEngineer = value
	case FieldRegisteredEngineer:
		f.RegisteredEngineer = value
	}
}

// Result is the response envelope of one extraction.
// On success the fields are inlined next to status/statusCode/message;
// on failure Fields is nil and Data holds a single empty object.
type Result struct {
	Status     bool   `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	*Fields
	Data []map[string]interface{} `json:"data,omitempty"`
}

// Success builds the envelope for a completed round trip
func Success(fields Fields) *Result {
	return &Result{
		Status:     true,
		StatusCode: StatusCodeOK,
		Message:    MessageSuccess,
		Fields:     &fields,
	}
}

// Failure builds the envelope for any failed extraction
func Failure(message string) *Result {
	return &Result{
		Status:     false,
		StatusCode: StatusCodeBadRequest,
		Message:    message,
		Data:       placeholderData(),
	}
}

// RequestError is the envelope returned when the request itself is rejected
// before extraction starts. Its status key is spelled "stratusCode"; clients
// of the endpoint depend on that spelling.
type RequestError struct {
	Message     string                   `json:"message"`
	StratusCode int                      `json:"stratusCode"`
	Status      bool                     `json:"status"`
	Data        []map[string]interface{} `json:"data"`
}

// NewRequestError builds a RequestError with the given message
func NewRequestError(message string) *RequestError {
	return &RequestError{
		Message:     message,
		StratusCode: StatusCodeBadRequest,
		Status:      false,
		Data:        placeholderData(),
	}
}

func placeholderData() []map[string]interface{} {
	return []map[string]interface{}{{}}
}
