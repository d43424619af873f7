package cmn

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var (
	GormDB *gorm.DB
)

func InitDB() {
	// 未开启数据库时跳过初始化（此时提交记录只写 CSV）
	enable := viper.GetBool("dbms.enable")
	if !enable {
		MiniLogger.Info("[ -- ] db module disabled")
		return
	}

	// 从配置文件中读取数据库连接配置
	host := viper.GetString("dbms.host")
	port := viper.GetString("dbms.port")
	user := viper.GetString("dbms.user")
	pwd := viper.GetString("dbms.pwd")
	dbname := viper.GetString("dbms.db")
	if host == "" || port == "" || user == "" || pwd == "" || dbname == "" {
		logger.Fatal("[ FAIL ] db config not found")
		return
	}

	// 构建连接字符串
	dsn := fmt.Sprintf("user=%v password=%v dbname=%v host=%v port=%v sslmode=disable TimeZone=Asia/Shanghai", user, pwd, dbname, host, port)

	// 初始化数据库连接池
	var err error
	GormDB, err = initDBPool(dsn)
	if err != nil {
		logger.Fatal("[ FAIL ] init db pool failed: " + err.Error())
		return
	}

	// 初始化表
	err = initTable(GormDB)
	if err != nil {
		logger.Fatal("[ FAIL ] init table failed: " + err.Error())
	}

	MiniLogger.Info("[ OK ] db module initialed")
}

// 初始化数据库连接池
func initDBPool(dsn string) (*gorm.DB, error) {
	// 连接 Gorm 数据库
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Error),
	})
	if err != nil {
		logger.Error("connect to pg failed: " + err.Error())
		return nil, err
	}

	// 获取底层的 sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("get sql.DB failed: " + err.Error())
		return nil, err
	}

	// 配置连接池
	sqlDB.SetMaxIdleConns(10)             // 最大空闲连接数
	sqlDB.SetMaxOpenConns(100)            // 最大打开连接数
	sqlDB.SetConnMaxLifetime(time.Hour)   // 连接的最大存活时间
	sqlDB.SetConnMaxIdleTime(time.Minute) // 空闲连接的最大存活时间

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		logger.Error("ping pg failed: " + err.Error())
		return nil, err
	}

	logger.Info("PG pool initialed")

	return db, nil
}

// 初始化表
func initTable(db *gorm.DB) error {
	// 自动迁移
	err := db.AutoMigrate(
		&TFortuneLog{})
	if err != nil {
		logger.Error("auto migrate failed: " + err.Error())
		return err
	}

	logger.Info("PG table initialed")
	return nil
}
