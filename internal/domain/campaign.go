package domain

import "time"

// Category labels offered by the campaign creation form.
const (
	CategoryMarketing = "Marketing"
	CategoryPersonal  = "Personal"
	CategoryBusiness  = "Business"
	CategoryOther     = "Other"
)

// Categories lists the known campaign category labels. The field is free
// text, so unknown labels are tolerated everywhere; this set only drives
// form choices and suggestion prompts.
var Categories = []string{CategoryMarketing, CategoryPersonal, CategoryBusiness, CategoryOther}

// Campaign is a named, trackable destination URL represented as a QR code.
// Campaigns are immutable after creation: there is no update operation,
// only create and delete.
type Campaign struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	TargetURL   string    `json:"target_url" db:"target_url"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
