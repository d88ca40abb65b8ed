package domain

import "time"

type AchievementID string

const (
	AchievementFirstGrade        AchievementID = "first_grade"
	AchievementExcellentStudent  AchievementID = "excellent_student"
	AchievementGradeCollector    AchievementID = "grade_collector"
	AchievementImprovementMaster AchievementID = "improvement_master"
	AchievementConsistentStudent AchievementID = "consistent_student"
	AchievementSpeedDemon        AchievementID = "speed_demon"
	AchievementSubjectMaster     AchievementID = "subject_master"
	AchievementPerfectionist     AchievementID = "perfectionist"
)

type Achievement struct {
	ID          AchievementID
	Title       string
	Description string
	Progress    int
	MaxProgress int
	Unlocked    bool
	UnlockedAt  *time.Time
}
