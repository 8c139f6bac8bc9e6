package models

// EnrollmentRecord is one person's registration in one class section.
// Rows are identifier-only; timing and room data live in the course catalog.
type EnrollmentRecord struct {
	ID        string `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"user_id"`
	ClassID   string `db:"class_id" json:"class_id"`
	SectionID string `db:"section_id" json:"section_id"`
}

// SectionRef identifies a section independent of any user.
type SectionRef struct {
	ClassID   string `json:"class_id"`
	SectionID string `json:"section_id"`
}

// MutualClass groups the sections two users share under one class.
type MutualClass struct {
	ClassID    string   `json:"class_id"`
	Name       string   `json:"name"`
	SectionIDs []string `json:"section_ids"`
}

// Terms are encoded as a one-letter prefix on section identifiers
// ("AL01" belongs to term "A"). TermAll disables prefix filtering.
const TermAll = "ALL"
