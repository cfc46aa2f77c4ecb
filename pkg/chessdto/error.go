package chessdto

// DomainError is the wire form of a rejected request. Code is a stable
// machine-readable key, Message is the localized text.
type DomainError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

func (e DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return "chess service error"
}

type ErrorResponse struct {
	Error DomainError `json:"error"`
}
