// file: internals/databases/migrate.go
package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	groupModel "trainingcenter_backend/internals/features/scheduling/groups/model"
	scheduleModel "trainingcenter_backend/internals/features/scheduling/schedules/model"
	sessionModel "trainingcenter_backend/internals/features/scheduling/sessions/model"
)

// Partial unique indexes backstop the day lock: two physical bookings
// starting at the same minute in the same room can never both commit.
var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_schedules_day_active
		ON schedules (schedule_day_of_week)
		WHERE schedule_is_active AND schedule_deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_schedules_room_day_start
		ON schedules (schedule_classroom, schedule_day_of_week, schedule_start_time)
		WHERE schedule_is_active AND schedule_deleted_at IS NULL AND schedule_classroom <> 'VIRTUAL'`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_date_live
		ON sessions (session_date)
		WHERE session_status IN ('SCHEDULED','IN_PROGRESS') AND session_deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_sessions_room_date_start
		ON sessions (session_classroom, session_date, session_start_time)
		WHERE session_status IN ('SCHEDULED','IN_PROGRESS') AND session_deleted_at IS NULL AND session_classroom <> 'VIRTUAL'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_sessions_regular_schedule_date
		ON sessions (session_schedule_id, session_date)
		WHERE session_type = 'REGULAR' AND session_schedule_id IS NOT NULL AND session_deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_enrollments_group_student
		ON enrollments (enrollment_group_id, enrollment_student_id)`,
}

// Migrate creates the scheduling tables and their indexes.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return err
	}
	if err := db.AutoMigrate(
		&groupModel.GroupModel{},
		&groupModel.EnrollmentModel{},
		&scheduleModel.ScheduleModel{},
		&sessionModel.SessionModel{},
	); err != nil {
		return err
	}
	for _, stmt := range indexStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	zap.L().Info("migrations applied", zap.Int("indexes", len(indexStatements)))
	return nil
}
