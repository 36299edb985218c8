// dto/media.go
package dto

type BadgeUploadResponse struct {
	AchievementID string `json:"achievement_id"`
	BadgeURL      string `json:"badge_url"`
	Size          int64  `json:"size"`
	ContentType   string `json:"content_type"`
}
