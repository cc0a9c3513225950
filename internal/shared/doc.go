// Package shared holds helpers that belong to no single layer of the
// hoopsight codebase.
//
// Its only subpackage today is testutil, the in-memory slog capture the
// package tests assert against. Anything placed here must stay free of
// business logic and of imports from other internal packages.
package shared
