// Package testutil holds deterministic fixtures and float assertions shared
// by the synthesis package tests.
package testutil
