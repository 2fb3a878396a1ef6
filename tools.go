//go:build tools

package tools

// Mocks are generated with the mockery binary (v2, expecter mode) from the
// interfaces listed in .mockery.yaml. Run: mockery (from the module root).
