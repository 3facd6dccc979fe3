package models

// SubscriptionRow is one row of the notifications/accounts join as stored
// in the relational backing store. Rooms is a comma separated list and
// Regex is the raw, subscriber supplied pattern; both are parsed when the
// in-memory cache is rebuilt.
type SubscriptionRow struct {
	DeviceToken string `gorm:"column:device_token" json:"deviceToken"`
	UserID      int64  `gorm:"column:userid" json:"userId"`
	Name        string `gorm:"column:name" json:"name"`
	Rooms       string `gorm:"column:rooms" json:"rooms"`
	Regex       string `gorm:"column:regex" json:"regex"`
}
