package model

// Diagnosis is a doctor's assessment attached to a forum message.
type Diagnosis struct {
	ID                   uint   `json:"diagnosis_id" gorm:"column:diagnosis_id;type:INTEGER;primaryKey"`
	UserID               uint   `json:"user_id" gorm:"column:user_id;type:INTEGER;not null"`
	MessageID            uint   `json:"message_id" gorm:"column:message_id;type:INTEGER;not null"`
	Disease              string `json:"disease" gorm:"column:disease;type:TEXT;not null"`
	DiagnosisDescription string `json:"diagnosis_description" gorm:"column:diagnosis_description;type:TEXT;not null"`

	User    User    `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Message Message `json:"-" gorm:"foreignKey:MessageID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Diagnosis) TableName() string {
	return "diagnosis"
}
