// Package hcl provides the concrete HCL implementation of config.Loader. It
// is responsible for file discovery, parsing, validation and translation of
// model files into the format-agnostic config.Model.
package hcl
