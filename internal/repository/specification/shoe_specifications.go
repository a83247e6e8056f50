package specification

import (
	"gorm.io/gorm"
)

// ByKeyword matches a single keyword case-insensitively across the shoe's
// model, brand and intended use, any gender variant's gender label, and any
// review's fit/feel/durability text. Multiple ByKeyword specifications
// AND-combine, so each keyword must match at least one of the fields.
type ByKeyword struct {
	Keyword string
}

func (s ByKeyword) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Keyword + "%"
	return db.Where(
		`(shoes.model ILIKE ? OR shoes.brand ILIKE ? OR shoes.intended_use ILIKE ?
		OR EXISTS (SELECT 1 FROM shoe_genders sg WHERE sg.shoe_id = shoes.id AND sg.gender ILIKE ?)
		OR EXISTS (SELECT 1 FROM shoe_reviews sr WHERE sr.shoe_id = shoes.id
			AND (sr.fit ILIKE ? OR sr.feel ILIKE ? OR sr.durability ILIKE ?)))`,
		pattern, pattern, pattern, pattern, pattern, pattern, pattern,
	)
}

// AnyKeyword matches when at least one of the keywords hits the keyword
// field set. Used by the fallback search path, which OR-combines tokens
// instead of requiring all of them.
type AnyKeyword struct {
	Keywords []string
}

func (s AnyKeyword) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Keywords) == 0 {
		return db
	}
	combined := db.Session(&gorm.Session{NewDB: true})
	for i, keyword := range s.Keywords {
		group := db.Session(&gorm.Session{NewDB: true})
		group = ByKeyword{Keyword: keyword}.Apply(group)
		if i == 0 {
			combined = combined.Where(group)
		} else {
			combined = combined.Or(group)
		}
	}
	return db.Where(combined)
}

// StackHeightRange bounds the logical stack height. The bound is satisfied
// when either the forefoot or the heel measurement falls inside it.
type StackHeightRange struct {
	Min *float64
	Max *float64
}

func (s StackHeightRange) Apply(db *gorm.DB) *gorm.DB {
	forefoot := db.Session(&gorm.Session{NewDB: true})
	heel := db.Session(&gorm.Session{NewDB: true})
	if s.Min != nil {
		forefoot = forefoot.Where("shoes.forefoot_stack_height_mm >= ?", *s.Min)
		heel = heel.Where("shoes.heel_stack_height_mm >= ?", *s.Min)
	}
	if s.Max != nil {
		forefoot = forefoot.Where("shoes.forefoot_stack_height_mm <= ?", *s.Max)
		heel = heel.Where("shoes.heel_stack_height_mm <= ?", *s.Max)
	}
	return db.Where(forefoot.Or(heel))
}

// OrderByStackHeight sorts by both underlying columns in the same direction.
// Forefoot leads, heel acts as the tie-break under the stable multi-key sort.
type OrderByStackHeight struct {
	Desc bool
}

func (s OrderByStackHeight) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.
		Order("shoes.forefoot_stack_height_mm " + direction).
		Order("shoes.heel_stack_height_mm " + direction)
}

// DropRange bounds the heel-to-forefoot drop. Uses the stored drop_mm column
// and falls back to the computed heel - forefoot difference when the column
// is null, so shoes scraped before the column existed still match.
type DropRange struct {
	Min *float64
	Max *float64
}

const dropExpr = "COALESCE(shoes.drop_mm, shoes.heel_stack_height_mm - shoes.forefoot_stack_height_mm)"

func (s DropRange) Apply(db *gorm.DB) *gorm.DB {
	db = db.Where("(shoes.drop_mm IS NOT NULL OR (shoes.heel_stack_height_mm IS NOT NULL AND shoes.forefoot_stack_height_mm IS NOT NULL))")
	if s.Min != nil {
		db = db.Where(dropExpr+" >= ?", *s.Min)
	}
	if s.Max != nil {
		db = db.Where(dropExpr+" <= ?", *s.Max)
	}
	return db
}

// ByWidth matches the fit column (slim / standard / original / wide).
type ByWidth struct {
	Width string
}

func (s ByWidth) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("shoes.fit ILIKE ?", "%"+s.Width+"%")
}

// ByIntendedUse matches the intended use column.
type ByIntendedUse struct {
	IntendedUse string
}

func (s ByIntendedUse) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("shoes.intended_use ILIKE ?", "%"+s.IntendedUse+"%")
}

// ByGender traverses to the gender variants.
type ByGender struct {
	Gender string
}

func (s ByGender) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"EXISTS (SELECT 1 FROM shoe_genders sg WHERE sg.shoe_id = shoes.id AND sg.gender ILIKE ?)",
		"%"+s.Gender+"%",
	)
}
