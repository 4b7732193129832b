package downdetect

import (
	"fmt"

	"chorey/internal/storage"
	cache_utils "chorey/internal/util/cache"
)

// DowndetectService answers "is this instance able to serve requests":
// both the database and the cache must respond.
type DowndetectService struct{}

func (s *DowndetectService) IsAvailable() error {
	if err := storage.GetDb().Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	if err := s.testCacheConnection(); err != nil {
		return fmt.Errorf("cache check failed: %w", err)
	}

	return nil
}

func (s *DowndetectService) testCacheConnection() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cache connection test panicked: %v", r)
		}
	}()

	cache_utils.TestCacheConnection()
	return nil
}
