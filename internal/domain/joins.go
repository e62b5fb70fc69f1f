package domain

// UserPhone and UserVoicemail are pure join records: composite primary key,
// no payload.

type UserPhone struct {
	UserID  int `gorm:"primaryKey;column:user_id" json:"userId"`
	PhoneID int `gorm:"primaryKey;column:phone_id" json:"phoneId"`
}

func (UserPhone) TableName() string { return "user_phones" }

type UserVoicemail struct {
	UserID int `gorm:"primaryKey;column:user_id" json:"userId"`
	VmID   int `gorm:"primaryKey;column:vm_id" json:"vmId"`
}

func (UserVoicemail) TableName() string { return "user_voicemails" }
