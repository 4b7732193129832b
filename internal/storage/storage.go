package storage

import (
	"sync"

	"chorey/internal/config"
	"chorey/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	once sync.Once
	db   *gorm.DB
)

// GetDb returns the shared GORM connection pool. The pool is opened once;
// repositories receive it through their constructors so tests can substitute
// their own handle or fakes.
func GetDb() *gorm.DB {
	once.Do(connect)
	return db
}

func connect() {
	log := logger.GetLogger()

	connection, err := gorm.Open(postgres.Open(config.GetEnv().DatabaseDsn), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
	})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		panic(err)
	}

	db = connection
}
