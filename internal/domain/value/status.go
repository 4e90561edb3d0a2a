package value

// Status lifecycle: draft -> active (manual publish), active -> expired
// (sweeper), expired -> active (re-observation with a material price change).
// Deals are never deleted by the pipeline itself.
type Status string

const (
	StatusActive  Status = "active"
	StatusDraft   Status = "draft"
	StatusExpired Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusDraft, StatusExpired:
		return true
	}

	return false
}
