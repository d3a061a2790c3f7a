// Package linkid recovers canonical content identifiers from free text
// shared out of short-video platforms. It recognizes direct links, share
// links and embedded modal links, resolves short links over the network,
// and mines identifiers that only appear inside fetched page bodies.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., regexp2/, http/, goquery/, rod/).
package linkid
