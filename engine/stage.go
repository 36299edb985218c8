package engine

import (
	"time"

	"github.com/brainwave-labs/quest_api/model"
)

// passingPercent is the score share a stage needs to count as completed.
const passingPercent = 60

// StageResult describes one finished lesson stage.
type StageResult struct {
	LevelName    string
	LevelType    string
	StageName    string
	StageNumber  int
	CategoryName string
	CategoryType string
	TotalLessons int
	Score        int
	MaxScore     int
	XPReward     int
}

// ApplyStageCompletion folds a finished lesson stage into the snapshot's
// level and category progress. The stage keeps its best score and attempt
// count; completion percentages are recomputed from the stage list. XP is
// granted only on the first completion of a stage, and the returned value
// is what the caller should feed into the leveling and streak steps.
func ApplyStageCompletion(s *model.ProgressSnapshot, r StageResult, now time.Time) int {
	level := levelProgressFor(s, r.LevelName, r.LevelType)
	stage := stageFor(level, r.StageName, r.StageNumber)

	stage.Attempts++
	if r.Score > stage.Score {
		stage.Score = r.Score
	}
	stage.MaxScore = r.MaxScore

	passed := r.MaxScore > 0 && r.Score*100 >= r.MaxScore*passingPercent
	newlyCompleted := passed && !stage.IsCompleted
	if newlyCompleted {
		stage.IsCompleted = true
		completedAt := now
		stage.CompletedAt = &completedAt
	}

	recomputeLevelCompletion(level)
	updateCategoryProgress(s, r, newlyCompleted, now)

	if !newlyCompleted {
		return 0
	}
	xp := r.XPReward
	s.TotalXP += xp
	return xp
}

func levelProgressFor(s *model.ProgressSnapshot, name, levelType string) *model.LevelProgress {
	for i := range s.Levels {
		if s.Levels[i].Name == name {
			return &s.Levels[i]
		}
	}
	s.Levels = append(s.Levels, model.LevelProgress{Name: name, Type: levelType})
	return &s.Levels[len(s.Levels)-1]
}

func stageFor(level *model.LevelProgress, name string, number int) *model.StageProgress {
	for i := range level.Stages {
		if level.Stages[i].Name == name {
			return &level.Stages[i]
		}
	}
	level.Stages = append(level.Stages, model.StageProgress{Name: name, Number: number})
	return &level.Stages[len(level.Stages)-1]
}

func recomputeLevelCompletion(level *model.LevelProgress) {
	if len(level.Stages) == 0 {
		level.CompletionPercentage = 0
		level.IsCompleted = false
		return
	}
	completed := 0
	for _, st := range level.Stages {
		if st.IsCompleted {
			completed++
		}
	}
	level.CompletionPercentage = completed * 100 / len(level.Stages)
	level.IsCompleted = completed == len(level.Stages)
}

func updateCategoryProgress(s *model.ProgressSnapshot, r StageResult, newlyCompleted bool, now time.Time) {
	if r.CategoryName == "" {
		return
	}

	var cat *model.CategoryProgress
	for i := range s.Categories {
		if s.Categories[i].Name == r.CategoryName {
			cat = &s.Categories[i]
			break
		}
	}
	if cat == nil {
		s.Categories = append(s.Categories, model.CategoryProgress{
			Name: r.CategoryName,
			Type: r.CategoryType,
		})
		cat = &s.Categories[len(s.Categories)-1]
	}

	if r.TotalLessons > 0 {
		cat.TotalLessons = r.TotalLessons
	}
	if newlyCompleted && cat.CompletedLessons < cat.TotalLessons {
		cat.CompletedLessons++
	}
	if cat.TotalLessons > 0 {
		cat.CompletionPercentage = cat.CompletedLessons * 100 / cat.TotalLessons
		cat.IsCompleted = cat.CompletedLessons == cat.TotalLessons
	}
	lastPlayed := now
	cat.LastPlayed = &lastPlayed
}
