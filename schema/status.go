package schema

import "encoding/json"

// StatusFailure is the status value servers use for structured failure bodies.
const StatusFailure = "Failure"

const (
	upgradeRequiredCode    = 400
	upgradeRequiredMessage = "Upgrade request required"
)

// Status is the structured status document some servers return in place of a
// resource body, most notably to signal that a plain request must be
// re-issued over a streaming connection.
type Status struct {
	Status  string `json:"status,omitempty"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// IsUpgradeRequired reports whether the status is the upgrade sentinel: the
// server refusing the plain request and demanding a streaming session instead.
func (s *Status) IsUpgradeRequired() bool {
	return s != nil && s.Status == StatusFailure && s.Code == upgradeRequiredCode && s.Message == upgradeRequiredMessage
}

// ParseStatus decodes body into a Status. It returns nil when the body is
// empty or does not carry a status document.
func ParseStatus(body []byte) *Status {
	if len(body) == 0 {
		return nil
	}
	status := &Status{}
	if err := json.Unmarshal(body, status); err != nil {
		return nil
	}
	if status.Status == "" && status.Message == "" {
		return nil
	}
	return status
}
