package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	authService "school_backend/internals/features/users/auth/service"
)

// StartTokenCleanupScheduler purges expired refresh tokens and
// blacklist rows every hour.
func StartTokenCleanupScheduler(db *gorm.DB) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		if err := authService.CleanupExpiredTokens(db); err != nil {
			log.Printf("[ERROR] token cleanup failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("[ERROR] failed to register token cleanup job: %v", err)
		return c
	}
	c.Start()
	log.Println("[INFO] token cleanup scheduler started (@hourly)")
	return c
}
