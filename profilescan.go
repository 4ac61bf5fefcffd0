// Package profilescan scrapes freelancer and professional profiles from
// Fiverr, Upwork, LinkedIn and Freelancer into a single normalized record
// that a downstream text-generation collaborator can give feedback on.
//
// This package contains domain types, interfaces, and pure domain logic
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., rod/, goquery/,
// gemini/).
package profilescan
