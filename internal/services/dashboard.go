package services

import (
	"time"

	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type ProjectStats struct {
	TotalProjects     int64 `json:"total_projects"`
	ActiveProjects    int64 `json:"active_projects"`
	CompletedProjects int64 `json:"completed_projects"`
	OnHoldProjects    int64 `json:"on_hold_projects"`
}

type TaskStats struct {
	TotalTasks        int64 `json:"total_tasks"`
	TodoTasks         int64 `json:"todo_tasks"`
	InProgressTasks   int64 `json:"in_progress_tasks"`
	CompletedTasks    int64 `json:"completed_tasks"`
	HighPriorityTasks int64 `json:"high_priority_tasks"`
	OverdueTasks      int64 `json:"overdue_tasks"`
}

type UserStats struct {
	TotalUsers     int64 `json:"total_users"`
	AdminUsers     int64 `json:"admin_users"`
	ManagerUsers   int64 `json:"manager_users"`
	DeveloperUsers int64 `json:"developer_users"`
}

type TrendPoint struct {
	Date           string `json:"date"`
	CompletedTasks int64  `json:"completed_tasks"`
}

type ProjectProgress struct {
	ID                   uint    `json:"id"`
	Name                 string  `json:"name"`
	Status               string  `json:"status"`
	TotalTasks           int64   `json:"total_tasks"`
	CompletedTasks       int64   `json:"completed_tasks"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

type UserProductivity struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	TasksCompleted int64  `json:"tasks_completed"`
}

type ActivityItem struct {
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	UserName    string    `json:"user_name"`
	UpdatedAt   time.Time `json:"updated_at"`
	ProjectName string    `json:"project_name"`
}

// DashboardStats bundles every dashboard view into one payload so the UI
// renders from a single request.
type DashboardStats struct {
	ProjectStats        ProjectStats       `json:"projectStats"`
	TaskStats           TaskStats          `json:"taskStats"`
	UserStats           UserStats          `json:"userStats"`
	TaskCompletionTrend []TrendPoint       `json:"taskCompletionTrend"`
	ProjectProgress     []ProjectProgress  `json:"projectProgress"`
	UserProductivity    []UserProductivity `json:"userProductivity"`
	RecentActivity      []ActivityItem     `json:"recentActivity"`
}

// GetStats computes all seven aggregations. Time bounds are computed in Go
// and bound as parameters so the SQL stays portable across drivers.
func (s *DashboardService) GetStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		TaskCompletionTrend: make([]TrendPoint, 0),
		ProjectProgress:     make([]ProjectProgress, 0),
		UserProductivity:    make([]UserProductivity, 0),
		RecentActivity:      make([]ActivityItem, 0),
	}

	now := time.Now()
	sevenDaysAgo := now.AddDate(0, 0, -7)
	thirtyDaysAgo := now.AddDate(0, 0, -30)

	err := s.db.Raw(`
		SELECT
			COUNT(*) AS total_projects,
			COUNT(CASE WHEN status = 'Active' THEN 1 END) AS active_projects,
			COUNT(CASE WHEN status = 'Completed' THEN 1 END) AS completed_projects,
			COUNT(CASE WHEN status = 'On Hold' THEN 1 END) AS on_hold_projects
		FROM projects`).Scan(&stats.ProjectStats).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Raw(`
		SELECT
			COUNT(*) AS total_tasks,
			COUNT(CASE WHEN status = 'To Do' THEN 1 END) AS todo_tasks,
			COUNT(CASE WHEN status = 'In Progress' THEN 1 END) AS in_progress_tasks,
			COUNT(CASE WHEN status = 'Done' THEN 1 END) AS completed_tasks,
			COUNT(CASE WHEN priority = 'High' THEN 1 END) AS high_priority_tasks,
			COUNT(CASE WHEN due_date < ? AND status != 'Done' THEN 1 END) AS overdue_tasks
		FROM tasks`, now).Scan(&stats.TaskStats).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Raw(`
		SELECT
			COUNT(*) AS total_users,
			COUNT(CASE WHEN role = 'Admin' THEN 1 END) AS admin_users,
			COUNT(CASE WHEN role = 'Manager' THEN 1 END) AS manager_users,
			COUNT(CASE WHEN role = 'Developer' THEN 1 END) AS developer_users
		FROM users`).Scan(&stats.UserStats).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Raw(`
		SELECT date(updated_at) AS date, COUNT(*) AS completed_tasks
		FROM tasks
		WHERE status = 'Done' AND updated_at >= ?
		GROUP BY date(updated_at)
		ORDER BY date DESC
		LIMIT 30`, thirtyDaysAgo).Scan(&stats.TaskCompletionTrend).Error
	if err != nil {
		return nil, err
	}

	// Projects with no tasks report 0% rather than a division error. The
	// top-10 cut ranks by completion, with id as a stable tie-break.
	err = s.db.Raw(`
		SELECT
			p.id, p.name, p.status,
			COUNT(t.id) AS total_tasks,
			COUNT(CASE WHEN t.status = 'Done' THEN 1 END) AS completed_tasks,
			CASE WHEN COUNT(t.id) = 0 THEN 0
				ELSE ROUND(COUNT(CASE WHEN t.status = 'Done' THEN 1 END) * 100.0 / COUNT(t.id), 2)
			END AS completion_percentage
		FROM projects p
		LEFT JOIN tasks t ON t.project_id = p.id
		WHERE p.status = 'Active'
		GROUP BY p.id, p.name, p.status
		ORDER BY completion_percentage DESC, p.id ASC
		LIMIT 10`).Scan(&stats.ProjectProgress).Error
	if err != nil {
		return nil, err
	}

	// The window condition lives in the join so users with zero recent
	// completions still rank. Ties break on user id so the ranking is
	// stable between requests.
	err = s.db.Raw(`
		SELECT u.id, u.name, COUNT(t.id) AS tasks_completed
		FROM users u
		LEFT JOIN tasks t ON t.assigned_to = u.id
			AND t.status = 'Done' AND t.updated_at >= ?
		GROUP BY u.id, u.name
		ORDER BY tasks_completed DESC, u.id ASC
		LIMIT 10`, thirtyDaysAgo).Scan(&stats.UserProductivity).Error
	if err != nil {
		return nil, err
	}

	// Inner joins: only assigned tasks count as activity.
	err = s.db.Raw(`
		SELECT 'task' AS type, t.title, t.status, u.name AS user_name,
			t.updated_at, p.name AS project_name
		FROM tasks t
		JOIN users u ON t.assigned_to = u.id
		JOIN projects p ON t.project_id = p.id
		WHERE t.updated_at >= ?
		ORDER BY t.updated_at DESC
		LIMIT 20`, sevenDaysAgo).Scan(&stats.RecentActivity).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
