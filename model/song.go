package model

// Song represents a song record in the library.
//
// LastPlayed is the ISO 8601 timestamp supplied by the caller on a
// play-count update; it stays nil until the first play and is passed
// through verbatim, so it is kept as a string column.
type Song struct {
	ID         int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string  `json:"name" gorm:"type:varchar(255);not null"`
	FilePath   string  `json:"file_path" gorm:"type:varchar(767);not null"`
	Duration   float64 `json:"duration" gorm:"not null"`
	PlayCount  int64   `json:"play_count" gorm:"not null;default:0"`
	LastPlayed *string `json:"last_played" gorm:"type:varchar(40)"`
}

// TableName sets the table name for GORM.
func (Song) TableName() string {
	return "songs"
}
