package users_models

import (
	"strings"
	"time"

	users_enums "chorey/internal/features/users/enums"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             uuid.UUID              `json:"id"        gorm:"column:id"`
	Name           string                 `json:"name"      gorm:"column:name"`
	Email          string                 `json:"email"     gorm:"column:email"`
	HashedPassword *string                `json:"-"         gorm:"column:hashed_password"`
	AvatarURL      string                 `json:"avatarUrl" gorm:"column:avatar_url"`
	Points         int                    `json:"points"    gorm:"column:points"`
	SkillsRaw      string                 `json:"-"         gorm:"column:skills_raw"`
	Skills         []string               `json:"skills"    gorm:"-"`
	Status         users_enums.UserStatus `json:"status"    gorm:"column:status"`
	CreatedAt      time.Time              `json:"createdAt" gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	if len(u.Skills) > 0 {
		u.SkillsRaw = strings.Join(u.Skills, ",")
	} else {
		u.SkillsRaw = ""
	}

	return nil
}

func (u *User) AfterFind(tx *gorm.DB) error {
	if u.SkillsRaw != "" {
		u.Skills = strings.Split(u.SkillsRaw, ",")
		for i, skill := range u.Skills {
			u.Skills[i] = strings.TrimSpace(skill)
		}
	} else {
		u.Skills = []string{}
	}

	return nil
}

func (u *User) IsActiveUser() bool {
	return u.Status == users_enums.UserStatusActive
}

func (u *User) HasPassword() bool {
	return u.HashedPassword != nil && *u.HashedPassword != ""
}
