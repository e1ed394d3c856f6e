package ds

// Role — уровень доступа пользователя
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ValidRole проверяет, что роль входит в допустимый набор.
// Любое другое значение — ошибка валидации, а не роль по умолчанию.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	UserID           int    `gorm:"primaryKey;column:user_id" json:"-"`
	Username         string `gorm:"size:150;unique;not null" json:"username"`
	Email            string `gorm:"size:254;unique;not null" json:"email"`
	FirstName        string `gorm:"size:150" json:"first_name"`
	LastName         string `gorm:"size:150" json:"last_name"`
	Bio              string `gorm:"type:text" json:"bio"`
	Role             Role   `gorm:"size:16;not null;default:user" json:"role"`
	IsSuperuser      bool   `gorm:"not null;default:false" json:"-"`
	IsStaff          bool   `gorm:"not null;default:false" json:"-"`
	ConfirmationCode string `gorm:"size:64" json:"-"`
}

// IsAdmin — администратор это роль admin либо флаг суперпользователя/персонала
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser || u.IsStaff
}

// IsModerator — модератором считается только роль moderator
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
