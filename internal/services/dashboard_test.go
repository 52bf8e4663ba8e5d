package services

import (
	"testing"

	"github.com/teamtrack/backend/internal/models"
	"gorm.io/gorm"
)

func createTestTask(t *testing.T, db *gorm.DB, projectID, createdBy uint, status, priority string, assignedTo *uint) *models.Task {
	t.Helper()

	task := models.Task{
		Title:      "task",
		Status:     status,
		Priority:   priority,
		ProjectID:  projectID,
		CreatedBy:  createdBy,
		AssignedTo: assignedTo,
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("create test task: %v", err)
	}
	return &task
}

func TestGetStats_EmptyDatabase(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)

	stats, err := svc.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}

	if stats.ProjectStats.TotalProjects != 0 {
		t.Errorf("TotalProjects = %d, expected 0", stats.ProjectStats.TotalProjects)
	}
	if stats.TaskStats.TotalTasks != 0 {
		t.Errorf("TotalTasks = %d, expected 0", stats.TaskStats.TotalTasks)
	}
	if stats.TaskCompletionTrend == nil || stats.ProjectProgress == nil ||
		stats.UserProductivity == nil || stats.RecentActivity == nil {
		t.Error("list views must be empty slices, not nil")
	}
}

func TestGetStats_Counts(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)

	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	dev := createTestUser(t, db, "dev@example.com", models.RoleDeveloper)

	active := createTestProject(t, db, "Active", admin.ID)
	done := createTestProject(t, db, "Done", admin.ID)
	db.Model(done).Update("status", models.ProjectCompleted)

	createTestTask(t, db, active.ID, admin.ID, models.TaskToDo, models.PriorityHigh, &dev.ID)
	createTestTask(t, db, active.ID, admin.ID, models.TaskInProgress, models.PriorityMedium, nil)
	createTestTask(t, db, active.ID, admin.ID, models.TaskDone, models.PriorityLow, &dev.ID)

	stats, err := svc.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}

	if stats.ProjectStats.TotalProjects != 2 {
		t.Errorf("TotalProjects = %d, expected 2", stats.ProjectStats.TotalProjects)
	}
	if stats.ProjectStats.ActiveProjects != 1 {
		t.Errorf("ActiveProjects = %d, expected 1", stats.ProjectStats.ActiveProjects)
	}
	if stats.ProjectStats.CompletedProjects != 1 {
		t.Errorf("CompletedProjects = %d, expected 1", stats.ProjectStats.CompletedProjects)
	}

	if stats.TaskStats.TotalTasks != 3 {
		t.Errorf("TotalTasks = %d, expected 3", stats.TaskStats.TotalTasks)
	}
	if stats.TaskStats.TodoTasks != 1 || stats.TaskStats.InProgressTasks != 1 || stats.TaskStats.CompletedTasks != 1 {
		t.Errorf("status breakdown = %d/%d/%d, expected 1/1/1",
			stats.TaskStats.TodoTasks, stats.TaskStats.InProgressTasks, stats.TaskStats.CompletedTasks)
	}
	if stats.TaskStats.HighPriorityTasks != 1 {
		t.Errorf("HighPriorityTasks = %d, expected 1", stats.TaskStats.HighPriorityTasks)
	}

	if stats.UserStats.TotalUsers != 2 {
		t.Errorf("TotalUsers = %d, expected 2", stats.UserStats.TotalUsers)
	}
	if stats.UserStats.AdminUsers != 1 || stats.UserStats.DeveloperUsers != 1 {
		t.Errorf("role breakdown = %d admins / %d developers, expected 1/1",
			stats.UserStats.AdminUsers, stats.UserStats.DeveloperUsers)
	}
}

func TestGetStats_ProjectProgress(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)

	owner := createTestUser(t, db, "owner@example.com", models.RoleManager)

	empty := createTestProject(t, db, "Empty", owner.ID)
	partial := createTestProject(t, db, "Partial", owner.ID)

	createTestTask(t, db, partial.ID, owner.ID, models.TaskDone, models.PriorityMedium, nil)
	createTestTask(t, db, partial.ID, owner.ID, models.TaskDone, models.PriorityMedium, nil)
	createTestTask(t, db, partial.ID, owner.ID, models.TaskDone, models.PriorityMedium, nil)
	createTestTask(t, db, partial.ID, owner.ID, models.TaskToDo, models.PriorityMedium, nil)

	stats, err := svc.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}

	progress := make(map[uint]ProjectProgress)
	for _, p := range stats.ProjectProgress {
		progress[p.ID] = p
	}

	// A project with no tasks reports 0%, not a division error.
	if p, ok := progress[empty.ID]; !ok {
		t.Error("empty project missing from progress")
	} else if p.CompletionPercentage != 0 {
		t.Errorf("empty project completion = %v, expected 0", p.CompletionPercentage)
	}

	if p, ok := progress[partial.ID]; !ok {
		t.Error("partial project missing from progress")
	} else {
		if p.TotalTasks != 4 || p.CompletedTasks != 3 {
			t.Errorf("task counts = %d/%d, expected 4/3", p.TotalTasks, p.CompletedTasks)
		}
		if p.CompletionPercentage != 75.0 {
			t.Errorf("completion = %v, expected 75.0", p.CompletionPercentage)
		}
	}
}

// The top-10 cut must rank by completion, not by age: an older finished
// project outranks a newer one that has barely started.
func TestGetStats_ProjectProgressOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)

	owner := createTestUser(t, db, "owner@example.com", models.RoleManager)

	finished := createTestProject(t, db, "Finished", owner.ID)
	createTestTask(t, db, finished.ID, owner.ID, models.TaskDone, models.PriorityMedium, nil)

	fresh := createTestProject(t, db, "Fresh", owner.ID)
	createTestTask(t, db, fresh.ID, owner.ID, models.TaskToDo, models.PriorityMedium, nil)

	stats, err := svc.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}

	if len(stats.ProjectProgress) != 2 {
		t.Fatalf("progress rows = %d, expected 2", len(stats.ProjectProgress))
	}
	if stats.ProjectProgress[0].ID != finished.ID {
		t.Errorf("first row = project %d (%.2f%%), expected %d (100%%)",
			stats.ProjectProgress[0].ID, stats.ProjectProgress[0].CompletionPercentage, finished.ID)
	}
	if stats.ProjectProgress[1].ID != fresh.ID {
		t.Errorf("second row = project %d, expected %d", stats.ProjectProgress[1].ID, fresh.ID)
	}
}

func TestGetStats_UserProductivityAndActivity(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)

	owner := createTestUser(t, db, "owner@example.com", models.RoleManager)
	dev := createTestUser(t, db, "dev@example.com", models.RoleDeveloper)
	project := createTestProject(t, db, "Work", owner.ID)

	createTestTask(t, db, project.ID, owner.ID, models.TaskDone, models.PriorityMedium, &dev.ID)
	createTestTask(t, db, project.ID, owner.ID, models.TaskDone, models.PriorityMedium, &dev.ID)
	createTestTask(t, db, project.ID, owner.ID, models.TaskToDo, models.PriorityMedium, &dev.ID)
	// Unassigned: counts toward stats but never toward activity.
	createTestTask(t, db, project.ID, owner.ID, models.TaskInProgress, models.PriorityMedium, nil)

	stats, err := svc.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}

	// Both users rank; the one with no completions still appears with zero.
	if len(stats.UserProductivity) != 2 {
		t.Fatalf("productivity rows = %d, expected 2", len(stats.UserProductivity))
	}
	if stats.UserProductivity[0].ID != dev.ID || stats.UserProductivity[0].TasksCompleted != 2 {
		t.Errorf("productivity[0] = user %d with %d done, expected user %d with 2",
			stats.UserProductivity[0].ID, stats.UserProductivity[0].TasksCompleted, dev.ID)
	}
	if stats.UserProductivity[1].ID != owner.ID || stats.UserProductivity[1].TasksCompleted != 0 {
		t.Errorf("productivity[1] = user %d with %d done, expected user %d with 0",
			stats.UserProductivity[1].ID, stats.UserProductivity[1].TasksCompleted, owner.ID)
	}

	if len(stats.RecentActivity) != 3 {
		t.Fatalf("activity rows = %d, expected 3 (unassigned excluded)", len(stats.RecentActivity))
	}
	for _, item := range stats.RecentActivity {
		if item.Type != "task" {
			t.Errorf("activity type = %q, expected %q", item.Type, "task")
		}
		if item.UserName != dev.Name {
			t.Errorf("user name = %q, expected %q", item.UserName, dev.Name)
		}
		if item.ProjectName != "Work" {
			t.Errorf("project name = %q, expected %q", item.ProjectName, "Work")
		}
	}
}
