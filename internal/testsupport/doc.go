// Package testsupport holds helpers shared by package tests: temp configs,
// file tree fixtures and an opened history store.
package testsupport
