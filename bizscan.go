// Package bizscan extracts structured business records from the search
// result and detail pages of a listings website.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, sqlite/).
package bizscan
