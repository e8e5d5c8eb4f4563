package models

import "time"

// SiteVisitModel records page visits deduplicated per visitor, path and
// calendar day. Repeat visits within a day increment VisitCount on the
// existing row; the (identity_key, pathname, visit_date) triple is the
// upsert conflict target.
type SiteVisitModel struct {
	ID          uint      `json:"id"           gorm:"primaryKey"`
	IdentityKey string    `json:"identity_key" gorm:"size:64;uniqueIndex:idx_visit_key_path_date;not null"`
	Pathname    string    `json:"pathname"     gorm:"size:191;uniqueIndex:idx_visit_key_path_date;not null"`
	VisitDate   string    `json:"visit_date"   gorm:"size:10;uniqueIndex:idx_visit_key_path_date;index;not null"`
	Referrer    string    `json:"referrer"`
	UserAgent   string    `json:"user_agent"`
	VisitCount  int       `json:"visit_count"  gorm:"default:1"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (SiteVisitModel) TableName() string { return "site_visits" }
