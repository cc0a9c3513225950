// Package api contains API contract definitions for the hoopsight dashboard.
// Version v1 represents the current stable API version.
package api

// TeamScoringRequest carries the one user-facing selection input: the season
// the team analysis view is computed for. Any integer season is accepted at
// the request level; a season absent from the cleaned games table yields an
// empty view, not an error.
type TeamScoringRequest struct {
	Season int `json:"season" query:"season" validate:"required,min=1946,max=2100"`
}

// ExportRequest describes a view download. Season is only consulted when the
// exported view is team-scoring.
type ExportRequest struct {
	View   string `json:"view" param:"view" validate:"required,view"`
	Format string `json:"format" query:"format" validate:"required,oneof=csv xlsx"`
	Season int    `json:"season" query:"season" validate:"omitempty,min=1946,max=2100"`
}
