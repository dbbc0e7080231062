package models

type UserRole string

// RoleAdmin is the only role; the public side needs no account.
const RoleAdmin UserRole = "admin"
