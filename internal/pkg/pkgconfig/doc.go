// Package pkgconfig provides a small abstraction for reading configuration values.
//
// Values come from a YAML file read by Viper, with SLUGLINE_* environment
// variables taking precedence and code-supplied defaults filling the gaps.
// Business code depends on the Config interface so it stays easy to test.
package pkgconfig
