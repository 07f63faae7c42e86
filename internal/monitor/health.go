package monitor

const (
	StatusUp      = "UP"
	StatusDown    = "DOWN"
	StatusUnknown = "UNKNOWN"
)

type Health struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}
