// Package aggregates owns transaction boundaries for catalog writes and maps store
// failures onto coded domain errors.
package aggregates
