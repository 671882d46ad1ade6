// Package goldcard harvests organism metadata from GOLD cards.
// It reads goldstamps from a catalog file, fetches (or loads from a local
// cache) the HTML card for each one, extracts the label/value pairs from its
// table headers and appends them as rows of a tab-separated file.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gohtml/).
package goldcard

// None is written in place of a value that is absent or empty.
const None = "None"
