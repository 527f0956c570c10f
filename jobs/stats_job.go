package jobs

import (
	"log"

	"github.com/skilllink/skilllink/services"
)

// LogPlatformStats writes the platform-wide totals to the log. Scheduled
// daily from main; read-only, so it never contends with request handlers.
func LogPlatformStats() {
	stats, err := services.GetPlatformStats()
	if err != nil {
		log.Printf("🔥 Failed to collect platform stats: %v", err)
		return
	}

	log.Printf("📊 Platform stats: users=%d skills=%d orders=%d reviews=%d providers=%d revenue=%.2f",
		stats.TotalUsers, stats.TotalSkills, stats.TotalOrders,
		stats.TotalReviews, stats.ActiveProviders, stats.TotalRevenue)
}
