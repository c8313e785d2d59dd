// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/user, domain/team,
// domain/board, domain/task, domain/export). This root package holds sentinel
// errors, the rejection reasons reported to callers, validation types, and
// the field limits every write path enforces.
package domain
