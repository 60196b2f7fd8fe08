// Package config provides configuration structures and utilities for pagegrade.
// It defines grading options, the optional YAML configuration file and the
// XDG directories used for persistent data.
package config
