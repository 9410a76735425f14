package model

import "fmt"

// MatchReason tags which matcher tier produced a result.
type MatchReason string

// Match reasons, in tier order.
const (
	ReasonExact    MatchReason = "exact_match"
	ReasonAlias    MatchReason = "alias_match"
	ReasonCategory MatchReason = "category_match"
	ReasonFuzzy    MatchReason = "fuzzy_match"
	ReasonNoMatch  MatchReason = "no_match"
)

// TraceStep records one tier the matcher attempted and how it went.
type TraceStep struct {
	Tier    string `json:"tier"`
	Outcome string `json:"outcome"`
	Detail  string `json:"detail,omitempty"`
}

func (s TraceStep) String() string {
	if s.Detail == "" {
		return fmt.Sprintf("%s: %s", s.Tier, s.Outcome)
	}
	return fmt.Sprintf("%s: %s (%s)", s.Tier, s.Outcome, s.Detail)
}

// MatchResult is the outcome of resolving one ingredient name against the catalog.
type MatchResult struct {
	CanonicalID *string     `json:"canonical_id,omitempty"`
	Reason      MatchReason `json:"reason"`
	DebugPath   []TraceStep `json:"debug_path"`
	Confidence  float64     `json:"confidence"`
}

// Matched reports whether a canonical item was resolved.
func (r MatchResult) Matched() bool {
	return r.CanonicalID != nil && r.Reason != ReasonNoMatch
}

// ID returns the canonical id or "" for no match.
func (r MatchResult) ID() string {
	if r.CanonicalID == nil {
		return ""
	}
	return *r.CanonicalID
}
