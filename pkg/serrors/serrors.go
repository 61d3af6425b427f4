package serrors

import "fmt"

// Base is a coded error shared across services. Code is stable and
// machine-readable, Message is the default human-readable text.
type Base struct {
	Code      string
	Message   string
	LocaleKey string
}

func NewError(code, message, localeKey string) *Base {
	return &Base{Code: code, Message: message, LocaleKey: localeKey}
}

func (e *Base) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches errors by code so wrapped copies compare equal to their sentinel.
func (e *Base) Is(target error) bool {
	t, ok := target.(*Base)
	if !ok {
		return false
	}
	return t.Code == e.Code
}
