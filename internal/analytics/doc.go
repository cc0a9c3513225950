// Package analytics derives the dashboard views from the cleaned dataset
// snapshot. Every function here is pure: derived rows are computed fresh from
// the slices passed in, with no hidden state, so the same snapshot always
// produces the same views.
//
// Views are small relative to the cleaned tables (a handful of rows per
// season, team, player or conference), so each request recomputes its view
// rather than caching it.
//
// Output ordering is explicit everywhere because Go map iteration is not
// deterministic: trends order by season, per-entity views by id, and the
// leaderboard by season then win percentage, both descending.
package analytics
