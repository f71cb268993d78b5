package model

// Message is a forum post. A message may reply to another message.
type Message struct {
	ID        uint   `json:"message_id" gorm:"column:message_id;type:INTEGER;primaryKey"`
	Title     string `json:"title" gorm:"column:title;type:TEXT;not null"`
	Body      string `json:"body" gorm:"column:body;type:TEXT;not null"`
	Timestamp int64  `json:"timestamp" gorm:"column:timestamp;type:INTEGER"`
	ReplyTo   *uint  `json:"reply_to" gorm:"column:reply_to;type:INTEGER"`
	UserID    uint   `json:"user_id" gorm:"column:user_id;type:INTEGER;not null"`

	Parent *Message `json:"-" gorm:"foreignKey:ReplyTo;references:ID;constraint:OnDelete:SET NULL"`
	User   User     `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Message) TableName() string {
	return "messages"
}
