package cmn

import (
	"github.com/google/uuid"
)

const (
	TFortuneLogName = "t_fortune_log" // 算命请求提交记录表
)

// TFortuneLog 算命请求提交记录表
// 每个被接受的请求追加一行，生成失败也会保留记录，只增不改
type TFortuneLog struct {
	Id        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null;unique"`     // 记录ID
	Name      string    `gorm:"column:name;type:varchar(100);not null"`             // 姓名
	Gender    string    `gorm:"column:gender;type:varchar(10);not null"`            // 性别 male/female
	DOB       string    `gorm:"column:dob;type:varchar(20);not null"`               // 出生日期
	BirthTime string    `gorm:"column:birth_time;type:varchar(20)"`                 // 出生时间，未知时为 Unknown
	CreatedAt int64     `gorm:"column:created_at;type:bigint;autoCreateTime:milli"` // 创建时间
}

func (TFortuneLog) TableName() string {
	return TFortuneLogName
}
