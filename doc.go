// Package main provides the entry point for the drisavo backend.
// It runs a REST/JSON API with the Fiber framework that serves the
// public driving-school website (services catalog, editable site
// content, contact inquiries) and the admin panel (inquiry workflow,
// content management, dashboard statistics). Persistence uses gorm.
package main
