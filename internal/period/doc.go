// Package period provides Subset, an immutable set of integer time periods
// bounded by a model's maximum calculation period.
package period
