package user

import (
	"time"

	apperrors "github.com/xiebiao/bookstore-perflab/pkg/errors"
)

// ErrUserNotFound 用户不存在
// 加购、结算时user_id无效都返回这个错误(404 "invalid user")
var ErrUserNotFound = apperrors.ErrUserNotFound

// User 用户实体
// 本服务没有注册/登录,用户由seed命令批量导入
// username、email唯一(数据库唯一约束保证)
type User struct {
	ID        int64
	Username  string
	Email     string
	CreatedAt time.Time
}

// NewUser 创建新用户(工厂方法)
func NewUser(username, email string) *User {
	return &User{
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
}
