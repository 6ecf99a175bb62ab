package models

import (
	"time"
)

// Article is the record managed by the service.
//
// The ID is a UUID string minted by the store on insert; callers never
// supply it. Tags are free-form labels and may be empty.
type Article struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Author    string    `gorm:"not null;size:255" bson:"author" json:"author" validate:"required"`
	Content   string    `gorm:"not null" bson:"content" json:"content" validate:"required"`
	Tags      []string  `gorm:"serializer:json" bson:"tags" json:"tags"`
	CreatedAt time.Time `gorm:"autoCreateTime" bson:"created_at" json:"created_at"`
}

// TableName returns the table name for Article.
func (Article) TableName() string {
	return "articles"
}

// Clone returns a deep copy so shared stores never hand out aliased slices.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}
	clone := *a
	if a.Tags != nil {
		clone.Tags = make([]string, len(a.Tags))
		copy(clone.Tags, a.Tags)
	}
	return &clone
}
