package analyses

import (
	"time"

	"prep-backend/internal/readiness"
)

// Analysis is one stored readiness analysis.
type Analysis struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Company   string    `json:"company"`
	Role      string    `json:"role"`
	JDText    string    `json:"jdText"`
	SourceKey string    `json:"sourceKey,omitempty"`
	readiness.Report
}

// timestampNow returns the current UTC time at TIMESTAMPTZ precision, so an
// analysis read back from Postgres equals the one returned at creation.
func timestampNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Input returns the engine input the analysis was computed from.
func (a Analysis) Input() readiness.Input {
	return readiness.Input{Company: a.Company, Role: a.Role, JDText: a.JDText}
}

// Summary is the compact form used by history listings.
type Summary struct {
	ID                     string    `json:"id"`
	CreatedAt              time.Time `json:"createdAt"`
	Company                string    `json:"company"`
	Role                   string    `json:"role"`
	ReadinessScore         int       `json:"readinessScore"`
	AdjustedReadinessScore int       `json:"adjustedReadinessScore"`
}

// Summarize projects an analysis into its listing form.
func Summarize(a Analysis) Summary {
	return Summary{
		ID:                     a.ID,
		CreatedAt:              a.CreatedAt,
		Company:                a.Company,
		Role:                   a.Role,
		ReadinessScore:         a.ReadinessScore,
		AdjustedReadinessScore: a.AdjustedReadinessScore,
	}
}
