package models

// Notification is an in-app message addressed to a provider.
type Notification struct {
	BaseModel
	Content string `gorm:"type:text;not null" json:"content"`
	UserID  uint   `gorm:"not null;index" json:"user"`
	Read    bool   `gorm:"default:false" json:"read"`
}
