package domain

import "fmt"

// FailureReason - классификация неудачного запроса к Overpass
type FailureReason string

const (
	ReasonRateLimited       FailureReason = "rate-limited"
	ReasonUpstreamBusy      FailureReason = "upstream-busy"
	ReasonMalformedQuery    FailureReason = "malformed-query"
	ReasonNetworkTimeout    FailureReason = "network-timeout"
	ReasonUnexpectedPayload FailureReason = "unexpected-response-shape"
	ReasonGeneric           FailureReason = "generic"
)

// QueryFailure возвращается, когда все эндпоинты Overpass исчерпаны.
// Содержит причину последней неудачной попытки.
type QueryFailure struct {
	Reason     FailureReason
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *QueryFailure) Error() string {
	msg := fmt.Sprintf("overpass query failed (%s)", e.Reason)
	if e.Endpoint != "" {
		msg += " at " + e.Endpoint
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *QueryFailure) Unwrap() error {
	return e.Err
}

// ReasonForStatus классифицирует HTTP статус ответа
func ReasonForStatus(status int) FailureReason {
	switch status {
	case 429:
		return ReasonRateLimited
	case 504:
		return ReasonUpstreamBusy
	case 400:
		return ReasonMalformedQuery
	default:
		return ReasonGeneric
	}
}
