// Package sitescrape converts a live website into a tree of markdown files
// with front matter, ready for a static-site generator. It crawls outward
// from a home page along the site's navigation menu and generic anchors,
// extracts content with configurable CSS selectors, and writes one file per
// page at a path that mirrors the navigation hierarchy.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, htmltomarkdown/, toml/).
package sitescrape
