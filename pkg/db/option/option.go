package option

import "gorm.io/gorm"

// QueryOption customizes a gorm query built by the generic repository.
type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type orderBy struct {
	clause string
}

func (o orderBy) Apply(db *gorm.DB) *gorm.DB { return db.Order(o.clause) }

// OrderBy sorts results by the given clause, e.g. "created_at DESC".
func OrderBy(clause string) QueryOption { return orderBy{clause: clause} }

type limit struct {
	n int
}

func (l limit) Apply(db *gorm.DB) *gorm.DB { return db.Limit(l.n) }

// Limit caps the number of rows returned.
func Limit(n int) QueryOption { return limit{n: n} }

type where struct {
	query string
	args  []any
}

func (w where) Apply(db *gorm.DB) *gorm.DB { return db.Where(w.query, w.args...) }

// Where adds a raw condition that the struct filter cannot express.
func Where(query string, args ...any) QueryOption { return where{query: query, args: args} }
