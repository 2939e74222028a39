// Package model holds the gorm table mappings of the persistence layer.
package model

// All lists every model in dependency order for schema migration.
func All() []any {
	return []any{
		&AccountModel{},
		&SessionTokenModel{},
		&CartModel{},
		&OrderModel{},
	}
}
