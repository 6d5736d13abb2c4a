package value_objects

import "fmt"

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

var validUrgencies = map[Urgency]bool{
	UrgencyLow:    true,
	UrgencyMedium: true,
	UrgencyHigh:   true,
}

func NewUrgency(s string) (Urgency, error) {
	u := Urgency(s)
	if !u.IsValid() {
		return "", fmt.Errorf("invalid urgency: %s", s)
	}
	return u, nil
}

func (u Urgency) String() string {
	return string(u)
}

func (u Urgency) IsValid() bool {
	return validUrgencies[u]
}

func (u Urgency) IsLow() bool {
	return u == UrgencyLow
}

func (u Urgency) IsMedium() bool {
	return u == UrgencyMedium
}

func (u Urgency) IsHigh() bool {
	return u == UrgencyHigh
}

// AllUrgencies returns every urgency level in ascending severity.
func AllUrgencies() []Urgency {
	return []Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh}
}
