package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// Quote book state
	SettingKeyQuotes           = "quotes"
	SettingKeySelectedCategory = "selectedCategory"

	// Quote sync status
	SettingKeyQuoteSyncLastAt      = "quote_sync_last_at"
	SettingKeyQuoteSyncLastStatus  = "quote_sync_last_status"
	SettingKeyQuoteSyncLastMessage = "quote_sync_last_message"
	SettingKeyQuoteSyncInserted    = "quote_sync_inserted"
)

// Session-scoped keys
const (
	SessionKeyLastQuoteIndex    = "lastQuoteIndex"
	SessionKeyLastQuoteCategory = "lastQuoteCategory" // filter lastQuoteIndex is relative to
)
