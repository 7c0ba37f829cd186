package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func Where(query interface{}, args ...interface{}) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

func OrderBy(order string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(order)
	}
}

func Preload(association string, args ...interface{}) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload(association, args...)
	}
}

// Unscoped includes soft-deleted rows. Only for historical lookups.
func Unscoped() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Unscoped()
	}
}

// ForUpdate locks the selected rows until the surrounding transaction ends.
// Dialects without row locks (sqlite) ignore the clause.
func ForUpdate() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}
}

// Like matches column case-insensitively against %term%. Wildcards in term are escaped.
func Like(column, term string) Scope {
	pattern := "%" + EscapeLike(strings.ToLower(term)) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER("+column+") LIKE ? ESCAPE '\\'", pattern)
	}
}

func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
