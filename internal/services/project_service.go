package services

import (
	"context"

	"studioBack/internal/lifecycle"
	"studioBack/internal/models"
	"studioBack/internal/notify"
	"studioBack/internal/repositories"
)

type ProjectService struct {
	ProjectRepo *repositories.ProjectRepository
	RequestRepo *repositories.RequestRepository
	UserRepo    *repositories.UserRepository
	Notifier    *notify.Sender
}

// CreateProject is the admin's direct creation path. When no owner id is
// given the user is resolved by client email; clients who have not signed up
// yet leave the project unowned until they do.
func (s *ProjectService) CreateProject(ctx context.Context, project models.Project, requestID int) (models.Project, error) {
	if project.UserID == nil && project.ClientEmail != "" {
		if user, err := s.UserRepo.GetUserByEmail(ctx, project.ClientEmail); err == nil {
			uid := user.ID
			project.UserID = &uid
		}
	}
	if project.Status == "" {
		project.Status = "in-progress"
	}
	project.Progress = lifecycle.ClampProgress(project.Progress)

	created, err := s.ProjectRepo.CreateProject(ctx, project)
	if err != nil {
		return models.Project{}, err
	}

	if requestID != 0 {
		if _, err := s.RequestRepo.GetRequestByID(ctx, requestID); err != nil {
			return models.Project{}, err
		}
		if err := s.RequestRepo.LinkProject(ctx, requestID, created.ID); err != nil {
			return models.Project{}, err
		}
	}
	return created, nil
}

func (s *ProjectService) GetProjects(ctx context.Context) ([]models.Project, error) {
	return s.ProjectRepo.GetProjects(ctx)
}

func (s *ProjectService) GetProjectsByUserID(ctx context.Context, userID int) ([]models.Project, error) {
	return s.ProjectRepo.GetProjectsByUserID(ctx, userID)
}

func (s *ProjectService) GetProjectByID(ctx context.Context, id int) (models.Project, error) {
	return s.ProjectRepo.GetProjectByID(ctx, id)
}

// GetOwnProject returns a project only to its owning client.
func (s *ProjectService) GetOwnProject(ctx context.Context, id, userID int) (models.Project, error) {
	project, err := s.ProjectRepo.GetProjectByID(ctx, id)
	if err != nil {
		return models.Project{}, err
	}
	if project.UserID == nil || *project.UserID != userID {
		return models.Project{}, models.ErrNotOwner
	}
	return project, nil
}

// UpdateProject is the admin full-field update. Progress is clamped here
// regardless of what the client sent.
func (s *ProjectService) UpdateProject(ctx context.Context, project models.Project) (models.Project, error) {
	existing, err := s.ProjectRepo.GetProjectByID(ctx, project.ID)
	if err != nil {
		return models.Project{}, err
	}
	project.Progress = lifecycle.ClampProgress(project.Progress)

	updated, err := s.ProjectRepo.UpdateProject(ctx, project)
	if err != nil {
		return models.Project{}, err
	}

	if s.Notifier != nil && existing.Status != updated.Status && updated.UserID != nil {
		s.notifyStatusChange(ctx, updated)
	}
	return updated, nil
}

func (s *ProjectService) notifyStatusChange(ctx context.Context, project models.Project) {
	user, err := s.UserRepo.GetUserByID(ctx, *project.UserID)
	if err != nil || user.FCMToken == "" {
		return
	}
	s.Notifier.ProjectStatusChanged(ctx, user.FCMToken, project.Name, lifecycle.Canonicalize(project.Status))
}
