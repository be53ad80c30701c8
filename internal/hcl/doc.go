// Package hcl loads projects written in HCL: class manifests, data types,
// page settings and documents. It also writes documents back to HCL so that
// a loaded project can be saved without losing identifiers.
//
// Identifiers that are not spelled out in a file are derived from names, so
// loading the same files twice yields the same IDs.
package hcl
