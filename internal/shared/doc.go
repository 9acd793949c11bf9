// Package shared provides utilities used across packages that belong to
// no specific domain or architectural layer. Currently that is the
// testutil subpackage with its log-capturing slog handler.
package shared
