// Package models contains GORM persistence models that map to database tables.
// Domain entities stay free of ORM tags; each model converts with ToDomain and
// FromDomain. Column names follow the storefront schema in migrations/.
package models
