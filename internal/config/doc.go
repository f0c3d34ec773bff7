// Package config defines the format-agnostic model definition consumed by the
// scheduler and the evaluator, the run settings with their defaults, and the
// Loader interface implemented by format-specific packages.
//
// The `config.Model` is the single source of truth for the `scheduler` and
// `executor` packages. The HCL implementation of Loader lives in package hcl.
package config
