package services

import (
	"errors"
	"testing"

	"github.com/teamtrack/backend/internal/models"
	"github.com/teamtrack/backend/internal/policy"
	"github.com/teamtrack/backend/pkg/response"
)

func TestCreateProject(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)

	owner := createTestUser(t, db, "owner@example.com", models.RoleDeveloper)

	project, err := svc.Create(&CreateProjectRequest{
		Name:        "Launch",
		Description: "Q3 launch",
		StartDate:   "2026-09-01",
	}, owner.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if project.Status != models.ProjectActive {
		t.Errorf("Status = %q, expected %q", project.Status, models.ProjectActive)
	}
	if project.CreatedBy != owner.ID {
		t.Errorf("CreatedBy = %d, expected %d", project.CreatedBy, owner.ID)
	}
	if project.StartDate == nil || project.StartDate.Format("2006-01-02") != "2026-09-01" {
		t.Errorf("StartDate = %v, expected 2026-09-01", project.StartDate)
	}
}

func TestCreateProject_BadDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)

	owner := createTestUser(t, db, "owner@example.com", models.RoleDeveloper)

	_, err := svc.Create(&CreateProjectRequest{Name: "Bad", StartDate: "next tuesday"}, owner.ID)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 400 {
		t.Errorf("expected 400 AppError, got %v", err)
	}
}

func TestUpdateProject_Policy(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)

	owner := createTestUser(t, db, "owner@example.com", models.RoleDeveloper)
	outsider := createTestUser(t, db, "outsider@example.com", models.RoleDeveloper)
	project := createTestProject(t, db, "Gated", owner.ID)

	name := "Renamed"

	// An unrelated developer may not edit.
	_, err := svc.Update(project.ID, policy.Actor{ID: outsider.ID, Role: outsider.Role}, &UpdateProjectRequest{Name: &name})
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 403 {
		t.Errorf("outsider update: expected 403 AppError, got %v", err)
	}

	// The owner may.
	updated, err := svc.Update(project.ID, policy.Actor{ID: owner.ID, Role: owner.Role}, &UpdateProjectRequest{Name: &name})
	if err != nil {
		t.Fatalf("owner update: error = %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("Name = %q, expected %q", updated.Name, "Renamed")
	}

	// A manager may edit any project.
	status := models.ProjectOnHold
	if _, err := svc.Update(project.ID, policy.Actor{ID: outsider.ID, Role: models.RoleManager}, &UpdateProjectRequest{Status: &status}); err != nil {
		t.Errorf("manager update: error = %v", err)
	}

	bad := "Archived"
	if _, err := svc.Update(project.ID, policy.Actor{ID: owner.ID, Role: owner.Role}, &UpdateProjectRequest{Status: &bad}); err == nil {
		t.Error("expected validation error for unknown status")
	}
}

func TestDeleteProject_CascadesAndPolicy(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	taskSvc := NewTaskService(db)
	memberSvc := NewMemberService(db)

	owner := createTestUser(t, db, "owner@example.com", models.RoleDeveloper)
	member := createTestUser(t, db, "member@example.com", models.RoleDeveloper)
	project := createTestProject(t, db, "Doomed", owner.ID)
	ownerActor := policy.Actor{ID: owner.ID, Role: owner.Role}

	if _, err := taskSvc.Create(&CreateTaskRequest{Title: "orphan-to-be", ProjectID: project.ID}, owner.ID); err != nil {
		t.Fatalf("Create task error = %v", err)
	}
	if _, err := memberSvc.Add(project.ID, ownerActor, member.ID, ""); err != nil {
		t.Fatalf("Add member error = %v", err)
	}

	// Manager cannot delete; only the owner or an admin.
	err := svc.Delete(project.ID, policy.Actor{ID: member.ID, Role: models.RoleManager})
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 403 {
		t.Errorf("manager delete: expected 403 AppError, got %v", err)
	}

	if err := svc.Delete(project.ID, ownerActor); err != nil {
		t.Fatalf("owner delete: error = %v", err)
	}

	var tasks, members int64
	db.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&tasks)
	db.Model(&models.ProjectMember{}).Where("project_id = ?", project.ID).Count(&members)
	if tasks != 0 || members != 0 {
		t.Errorf("leftover rows: %d tasks, %d members, expected 0/0", tasks, members)
	}
}

func TestGetProject_WithMembers(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	memberSvc := NewMemberService(db)

	owner := createTestUser(t, db, "owner@example.com", models.RoleManager)
	member := createTestUser(t, db, "member@example.com", models.RoleDeveloper)
	project := createTestProject(t, db, "Detail", owner.ID)

	if _, err := memberSvc.Add(project.ID, policy.Actor{ID: owner.ID, Role: owner.Role}, member.ID, "Reviewer"); err != nil {
		t.Fatalf("Add member error = %v", err)
	}

	detail, err := svc.Get(project.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if detail.CreatedByName != owner.Name {
		t.Errorf("CreatedByName = %q, expected %q", detail.CreatedByName, owner.Name)
	}
	if len(detail.Members) != 1 {
		t.Fatalf("members = %d, expected 1", len(detail.Members))
	}
	m := detail.Members[0]
	if m.ID != member.ID || m.ProjectRole != "Reviewer" || m.UserRole != models.RoleDeveloper {
		t.Errorf("member = %+v, expected id=%d project_role=Reviewer user_role=Developer", m, member.ID)
	}
}

func TestGetProject_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)

	_, err := svc.Get(42)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 404 {
		t.Errorf("expected 404 AppError, got %v", err)
	}
}
