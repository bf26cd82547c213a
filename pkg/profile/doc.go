// Package profile describes complete generation runs: the axes to enumerate,
// the template bundle to render, and how outputs are named and reported.
// Profiles ship embedded in the binary as YAML documents; they are part of the
// tool, not runtime configuration.
package profile
