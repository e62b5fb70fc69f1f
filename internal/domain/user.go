package domain

// User is a directory entry. The integer ID is externally supplied (the
// document id of the imported record), not auto-assigned.
type User struct {
	ID              int     `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	UserID          string  `gorm:"size:9;uniqueIndex;not null;column:user_id" json:"userId"`
	OriginationTime int64   `gorm:"not null;column:origination_time" json:"originationTime"`
	ClusterID       *string `gorm:"size:50;column:cluster_id" json:"clusterId"`

	Cluster    *Cluster    `gorm:"foreignKey:ClusterID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Phones     []Phone     `gorm:"many2many:user_phones;joinForeignKey:UserID;joinReferences:PhoneID" json:"phones"`
	Voicemails []Voicemail `gorm:"many2many:user_voicemails;joinForeignKey:UserID;joinReferences:VmID" json:"voicemails"`
}

func (User) TableName() string { return "users" }
