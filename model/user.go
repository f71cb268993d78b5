package model

// User roles stored in users.role.
const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// User is a forum member. Only doctors may author a diagnosis.
type User struct {
	ID               uint   `json:"user_id" gorm:"column:user_id;type:INTEGER;primaryKey"`
	Nickname         string `json:"nickname" gorm:"column:nickname;type:TEXT;not null;uniqueIndex"`
	Role             string `json:"role" gorm:"column:role;type:TEXT;not null"`
	RegistrationDate int64  `json:"registration_date" gorm:"column:registration_date;type:INTEGER"`
	LastLogin        int64  `json:"last_login" gorm:"column:last_login;type:INTEGER"`
}

func (User) TableName() string {
	return "users"
}

// IsDoctor reports whether the user may author diagnoses.
func (u User) IsDoctor() bool {
	return u.Role == RoleDoctor
}

// UserProfile holds the personal details of a user, one row per user.
type UserProfile struct {
	UserID     uint   `json:"user_id" gorm:"column:user_id;type:INTEGER;primaryKey;autoIncrement:false"`
	Firstname  string `json:"firstname" gorm:"column:firstname;type:TEXT"`
	Lastname   string `json:"lastname" gorm:"column:lastname;type:TEXT"`
	Email      string `json:"email" gorm:"column:email;type:TEXT"`
	Gender     string `json:"gender" gorm:"column:gender;type:TEXT"`
	Age        int    `json:"age" gorm:"column:age;type:INTEGER"`
	Phone      string `json:"phone" gorm:"column:phone;type:TEXT"`
	Speciality string `json:"speciality" gorm:"column:speciality;type:TEXT"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (UserProfile) TableName() string {
	return "users_profile"
}
