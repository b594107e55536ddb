// Package demonchart extracts difficulty ratings of rated levels ("demons")
// from a blog post and serves them to an interactive bar-chart renderer.
// It fetches the post, splits it into heading-delimited sections, parses each
// section into a record (name, author, difficulty value, categorized links,
// commentary with resolved footnotes), persists snapshots, and exposes the
// ordered record list over a small JSON API.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package demonchart
