package config

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the shared database handle set by InitDB.
var DB *gorm.DB

// Dialector picks the gorm driver for the configured database.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverMySQL:
		return mysql.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
}

// InitDB opens the database connection. Statement logging is verbose in dev only.
func InitDB(s *Settings) (*gorm.DB, error) {
	dialector, err := Dialector(s.DBDriver, s.DBDSN)
	if err != nil {
		return nil, err
	}

	logMode := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
	if s.IsDev() {
		logMode.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(dialector, logMode)
	if err != nil {
		return nil, fmt.Errorf("err opening gorm %s connection: %w", s.DBDriver, err)
	}
	DB = db

	Logger.Info("✅ Database connected", zap.String("driver", s.DBDriver))
	return db, nil
}

// CloseDB closes the underlying sql.DB of DB.
func CloseDB() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
