package user

// User 账号记录 email为归一化自然键
// 密码按原样存储 加密策略由外层收口 本核心不做散列
type User struct {
	ID        string  `bson:"_id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	Email     string  `bson:"email" json:"email"`
	Password  string  `bson:"password" json:"password"`
	Role      string  `bson:"role" json:"role"`     // STUDENT | STAFF | SUPER_ADMIN
	Status    string  `bson:"status" json:"status"` // PENDING | AUTHORIZED | DENIED
	Grade     *string `bson:"grade,omitempty" json:"grade,omitempty"`
	CreatedAt int64   `bson:"created_at" json:"createdAt"`
}
