// Package aggregates defines the coded error shared by services and the HTTP boundary.
package aggregates
