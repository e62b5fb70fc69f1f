package domain

// Phone is a physical device. Shared ownership is valid: the same phone may
// be linked to several users.
type Phone struct {
	PhoneID      int     `gorm:"primaryKey;autoIncrement;column:phone_id" json:"phoneId"`
	Identifier   string  `gorm:"size:20;uniqueIndex;not null;column:identifier" json:"identifier"`
	PhoneModel   *string `gorm:"size:50;column:phone_model" json:"-"`
	PurchaseDate *string `gorm:"size:50;column:purchase_date" json:"-"`

	Users []User `gorm:"many2many:user_phones;joinForeignKey:PhoneID;joinReferences:UserID" json:"-"`
}

func (Phone) TableName() string { return "phones" }
