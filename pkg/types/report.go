package types

// ConflictKind names why two plantings cannot coexist.
type ConflictKind string

// Conflict kinds. A true conflict requires overlap in both space and time.
const (
	ConflictSpaceAndTime ConflictKind = "space-and-time"
)

// SkipReason explains why a candidate could not be evaluated. These are
// defined outcomes, not errors.
type SkipReason string

// Skip reasons, in the order the resolver tests them.
const (
	SkipNone           SkipReason = ""
	SkipNoPosition     SkipReason = "no-position"
	SkipOverride       SkipReason = "override"
	SkipIncompleteDate SkipReason = "incomplete-window"
	SkipUnknownCrop    SkipReason = "unknown-crop"
)

// Conflict describes one existing occupant that collides with a candidate.
type Conflict struct {
	PlantingID string       `json:"planting_id"`
	CropID     string       `json:"crop_id"`
	Variety    string       `json:"variety,omitempty"`
	Dates      string       `json:"dates"`
	Window     DateRange    `json:"window"`
	Position   Position     `json:"position"`
	Kind       ConflictKind `json:"kind"`
	Distance   int          `json:"distance"`
	Radius     int          `json:"radius"`
}

// SunSeverity grades a sun-exposure mismatch.
type SunSeverity string

// Sun severities. Both are advisory; neither blocks placement.
const (
	SunCaution SunSeverity = "caution"
	SunWarning SunSeverity = "warning"
)

// SunExposureWarning annotates a crop placed in a bed with less light than
// it wants.
type SunExposureWarning struct {
	Requirement Light       `json:"requirement"`
	Exposure    Light       `json:"exposure"`
	Severity    SunSeverity `json:"severity"`
	Message     string      `json:"message"`
}

// ConflictReport is the result of evaluating one candidate against a bed.
type ConflictReport struct {
	HasConflict        bool                `json:"has_conflict"`
	Evaluated          bool                `json:"evaluated"`
	SkipReason         SkipReason          `json:"skip_reason,omitempty"`
	Conflicts          []Conflict          `json:"conflicts"`
	SunExposureWarning *SunExposureWarning `json:"sun_exposure_warning,omitempty"`
}
