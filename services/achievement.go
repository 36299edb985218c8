package services

import (
	ctx "context"
	"errors"
	"fmt"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/brainwave-labs/quest_api/dto"
	"github.com/brainwave-labs/quest_api/model"
	"github.com/brainwave-labs/quest_api/services/repositories"
	"github.com/brainwave-labs/quest_api/shared"
)

// AchievementService owns the achievement catalog. The active catalog is
// read on every unlock pass, so it is cached in Redis and invalidated on
// every write.
type AchievementService struct {
	context.DefaultService

	sqlSvc   *SqlService
	redisSvc *RedisService

	achievementRepo *repositories.AchievementRepository
	progressRepo    *repositories.ProgressRepository
}

const ACHIEVEMENT_SVC = "achievement_svc"

const (
	catalogCacheKey = "achievements:active_catalog"
	catalogCacheTTL = 5 * time.Minute
)

func (svc AchievementService) Id() string {
	return ACHIEVEMENT_SVC
}

func (svc *AchievementService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AchievementService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)

	svc.achievementRepo = repositories.NewAchievementRepository(svc.sqlSvc.Db())
	svc.progressRepo = repositories.NewProgressRepository(svc.sqlSvc.Db())
	return nil
}

// GetActiveCatalog returns active achievements in evaluation order,
// served from the Redis cache when warm.
func (svc *AchievementService) GetActiveCatalog() ([]model.Achievement, error) {
	c := ctx.Background()

	if cached, err := svc.redisSvc.Get(c, catalogCacheKey); err == nil && cached != "" {
		var catalog []model.Achievement
		if err := sonic.UnmarshalString(cached, &catalog); err == nil {
			return catalog, nil
		}
		// poisoned entry; drop it and fall through to the database
		_ = svc.redisSvc.Delete(c, catalogCacheKey)
	}

	catalog, err := svc.achievementRepo.GetActiveCatalog()
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if data, err := sonic.Marshal(catalog); err == nil {
		if err := svc.redisSvc.Set(c, catalogCacheKey, data, catalogCacheTTL); err != nil {
			log.WithError(err).Warn("failed to cache achievement catalog")
		}
	}

	return catalog, nil
}

func (svc *AchievementService) invalidateCatalog() {
	if err := svc.redisSvc.Delete(ctx.Background(), catalogCacheKey); err != nil {
		log.WithError(err).Warn("failed to invalidate achievement catalog cache")
	}
}

// CreateAchievement adds a catalog entry. Prerequisites must reference
// achievement ids that already exist.
func (svc *AchievementService) CreateAchievement(req *dto.CreateAchievementRequest) (*dto.AchievementResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, "invalid achievement payload")
	}

	if existing, err := svc.achievementRepo.GetByAchievementID(req.AchievementID); err == nil && existing != nil {
		return nil, shared.NewConflictError(nil, fmt.Sprintf("achievement %s already exists", req.AchievementID))
	}

	for _, prereq := range req.Prerequisites {
		if _, err := svc.achievementRepo.GetByAchievementID(prereq); err != nil {
			return nil, shared.NewBadRequestError(err, fmt.Sprintf("unknown prerequisite %s", prereq))
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	def := &model.Achievement{
		ID:            uuid.Must(uuid.NewV7()).String(),
		AchievementID: req.AchievementID,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Icon:          req.Icon,
		Color:         req.Color,
		Rarity:        req.Rarity,
		Criteria: model.AchievementCriteria{
			Type:     req.Criteria.Type,
			Value:    req.Criteria.Value,
			Operator: req.Criteria.Operator,
		},
		Points:        req.Points,
		Prerequisites: req.Prerequisites,
		Rewards:       model.AchievementRewards{XPBonus: req.XPBonus},
		SortOrder:     req.SortOrder,
		IsActive:      isActive,
	}

	created, err := svc.achievementRepo.Create(def)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	svc.invalidateCatalog()

	resp := toAchievementResponse(created, nil)
	return &resp, nil
}

// UpdateAchievement rewrites a catalog entry in place. The achievement id
// itself is immutable; unlocked copies in user snapshots are not touched.
func (svc *AchievementService) UpdateAchievement(achievementID string, req *dto.CreateAchievementRequest) (*dto.AchievementResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, "invalid achievement payload")
	}
	if req.AchievementID != achievementID {
		return nil, shared.NewBadRequestError(nil, "achievement id cannot be changed")
	}

	def, err := svc.achievementRepo.GetByAchievementID(achievementID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	for _, prereq := range req.Prerequisites {
		if prereq == achievementID {
			return nil, shared.NewBadRequestError(nil, "achievement cannot require itself")
		}
		if _, err := svc.achievementRepo.GetByAchievementID(prereq); err != nil {
			return nil, shared.NewBadRequestError(err, fmt.Sprintf("unknown prerequisite %s", prereq))
		}
	}

	def.Name = req.Name
	def.Description = req.Description
	def.Category = req.Category
	def.Icon = req.Icon
	def.Color = req.Color
	def.Rarity = req.Rarity
	def.Criteria = model.AchievementCriteria{
		Type:     req.Criteria.Type,
		Value:    req.Criteria.Value,
		Operator: req.Criteria.Operator,
	}
	def.Points = req.Points
	def.Prerequisites = req.Prerequisites
	def.Rewards = model.AchievementRewards{XPBonus: req.XPBonus}
	def.SortOrder = req.SortOrder
	if req.IsActive != nil {
		def.IsActive = *req.IsActive
	}

	if err := svc.achievementRepo.Update(def); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	svc.invalidateCatalog()

	resp := toAchievementResponse(def, nil)
	return &resp, nil
}

// ListAchievements returns the full catalog annotated with the user's
// unlock state.
func (svc *AchievementService) ListAchievements(userID string) (*dto.AchievementCollectionResponse, error) {
	catalog, err := svc.achievementRepo.GetAll()
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	unlockedAt := map[string]time.Time{}
	if userID != "" {
		snapshot, err := svc.progressRepo.GetSnapshot(userID)
		switch {
		case err == nil:
			for _, a := range snapshot.Achievements {
				unlockedAt[a.AchievementID] = a.UnlockedAt
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no snapshot yet, nothing unlocked
		default:
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	resp := &dto.AchievementCollectionResponse{
		Achievements: make([]dto.AchievementResponse, 0, len(catalog)),
		Total:        len(catalog),
	}
	for i := range catalog {
		var at *time.Time
		if t, ok := unlockedAt[catalog[i].AchievementID]; ok {
			at = &t
			resp.Unlocked++
		}
		resp.Achievements = append(resp.Achievements, toAchievementResponse(&catalog[i], at))
	}

	return resp, nil
}

// SetBadgeURL stores the badge asset location for an achievement.
func (svc *AchievementService) SetBadgeURL(achievementID, badgeURL string) error {
	if _, err := svc.achievementRepo.GetByAchievementID(achievementID); err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	if err := svc.achievementRepo.SetBadgeURL(achievementID, badgeURL); err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	svc.invalidateCatalog()
	return nil
}

func toAchievementResponse(def *model.Achievement, unlockedAt *time.Time) dto.AchievementResponse {
	return dto.AchievementResponse{
		AchievementID: def.AchievementID,
		Name:          def.Name,
		Description:   def.Description,
		Category:      def.Category,
		Icon:          def.Icon,
		Color:         def.Color,
		Rarity:        def.Rarity,
		BadgeURL:      def.BadgeURL,
		Criteria: dto.CriteriaRequest{
			Type:     def.Criteria.Type,
			Value:    def.Criteria.Value,
			Operator: def.Criteria.Operator,
		},
		Points:        def.Points,
		Prerequisites: def.Prerequisites,
		XPBonus:       def.Rewards.XPBonus,
		IsActive:      def.IsActive,
		UnlockedAt:    unlockedAt,
	}
}
