package domain

// Success codes used by the backend. Both conventions are live and every
// consumer must accept either.
const (
	CodeOK     = 200
	CodeLegacy = 1
)

// FallbackMessage tags envelopes synthesized from fallback data.
const FallbackMessage = "Success (Mock Data)"

// IsSuccessCode reports whether an envelope code means success.
func IsSuccessCode(code int) bool {
	return code == CodeOK || code == CodeLegacy
}

// ResultSource tells live envelopes apart from synthesized ones.
type ResultSource int

const (
	// SourceLive is an envelope decoded from a 2xx backend response.
	SourceLive ResultSource = iota
	// SourceFallback is an envelope built from caller-supplied fallback data
	// after the request failed.
	SourceFallback
)

func (s ResultSource) String() string {
	if s == SourceFallback {
		return "fallback"
	}
	return "live"
}

// Result is the {code, msg, data} wire envelope wrapping every payload.
type Result[T any] struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data T      `json:"data"`

	Source ResultSource `json:"-"`
}

// OK reports whether the envelope carries a success code.
func (r Result[T]) OK() bool {
	return IsSuccessCode(r.Code)
}

// Synthetic reports whether the envelope was substituted from fallback data.
func (r Result[T]) Synthetic() bool {
	return r.Source == SourceFallback
}

// FallbackResult wraps data in a synthetic success envelope.
func FallbackResult[T any](data T) Result[T] {
	return Result[T]{
		Code:   CodeOK,
		Msg:    FallbackMessage,
		Data:   data,
		Source: SourceFallback,
	}
}
