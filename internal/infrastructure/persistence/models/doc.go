// Package models contains GORM persistence models. Domain aggregates are
// mapped to and from these models at the repository boundary so the domain
// layer never carries persistence tags.
package models
