package domain

// Voicemail is a voicemail box, shared across users analogous to Phone.
type Voicemail struct {
	VmID            int     `gorm:"primaryKey;autoIncrement;column:vm_id" json:"vmId"`
	Identifier      string  `gorm:"size:20;uniqueIndex;not null;column:identifier" json:"identifier"`
	SetupDate       *string `gorm:"size:50;column:setup_date" json:"-"`
	StorageCapacity *int    `gorm:"column:storage_capacity" json:"-"`

	Users []User `gorm:"many2many:user_voicemails;joinForeignKey:VmID;joinReferences:UserID" json:"-"`
}

func (Voicemail) TableName() string { return "voicemails" }
