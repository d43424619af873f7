package fortune

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ogdev97/isuanming/cmn"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// 出生时间缺失时写入的占位值
	unknownBirthTime = "Unknown"

	csvHeader = "Timestamp,Name,Gender,DOB,BirthTime\n"
)

// SubmissionSink 提交记录落盘
// 每个被接受的请求写一条，后续模型调用失败也不回滚
type SubmissionSink interface {
	Record(name, gender, dob, birthTime string) error
}

// csvSink 追加写 CSV 文件的提交记录实现
type csvSink struct {
	mu   sync.Mutex
	path string
}

func newCsvSink(path string) *csvSink {
	return &csvSink{path: path}
}

func (s *csvSink) Record(name, gender, dob, birthTime string) error {
	if birthTime == "" {
		birthTime = unknownBirthTime
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)
	line := fmt.Sprintf("%s,%s,%s,%s,%s\n",
		csvQuote(timestamp), csvQuote(name), csvQuote(gender), csvQuote(dob), csvQuote(birthTime))

	// 判存-写表头-追加必须串行，避免并发写交错破坏行
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		err = os.WriteFile(s.path, []byte(csvHeader), 0o644)
		if err != nil {
			return fmt.Errorf("failed to create submission log: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to check submission log: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open submission log: %w", err)
	}

	_, err = f.WriteString(line)
	closeErr := f.Close()
	if err != nil {
		return fmt.Errorf("failed to append submission log: %w", err)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close submission log: %w", closeErr)
	}

	return nil
}

// csvQuote 字段整体加引号，内部引号翻倍，保证含分隔符的值不破坏记录流
func csvQuote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// gormSink 写入 t_fortune_log 表的提交记录实现
type gormSink struct {
	db *gorm.DB
}

func newGormSink(db *gorm.DB) *gormSink {
	return &gormSink{db: db}
}

func (s *gormSink) Record(name, gender, dob, birthTime string) error {
	if birthTime == "" {
		birthTime = unknownBirthTime
	}

	row := cmn.TFortuneLog{
		Id:        uuid.New(),
		Name:      name,
		Gender:    gender,
		DOB:       dob,
		BirthTime: birthTime,
	}
	return s.db.Create(&row).Error
}
