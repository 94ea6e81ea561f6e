package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"studioBack/internal/lifecycle"
	"studioBack/internal/models"
	"studioBack/internal/repositories"
)

// acceptKeyTTL bounds how long a completed accept is replayed from cache
// instead of hitting the status guard in the database.
const acceptKeyTTL = 24 * time.Hour

type RequestService struct {
	RequestRepo *repositories.RequestRepository
	ProjectRepo *repositories.ProjectRepository
	Lifecycle   *lifecycle.Service
	Redis       *redis.Client
}

func (s *RequestService) Submit(ctx context.Context, draft models.Request, userID int) (models.Request, error) {
	req, err := s.Lifecycle.Submit(draft, userID)
	if err != nil {
		return models.Request{}, err
	}
	return s.RequestRepo.CreateRequest(ctx, req)
}

func (s *RequestService) GetRequests(ctx context.Context) ([]models.Request, error) {
	return s.RequestRepo.GetRequests(ctx)
}

func (s *RequestService) GetRequestsByUserID(ctx context.Context, userID int) ([]models.Request, error) {
	return s.RequestRepo.GetRequestsByUserID(ctx, userID)
}

func (s *RequestService) GetRequestByID(ctx context.Context, id int) (models.Request, error) {
	return s.RequestRepo.GetRequestByID(ctx, id)
}

// GetOwnRequest returns a request only to its owner.
func (s *RequestService) GetOwnRequest(ctx context.Context, id, userID int) (models.Request, error) {
	req, err := s.RequestRepo.GetRequestByID(ctx, id)
	if err != nil {
		return models.Request{}, err
	}
	if req.UserID != userID {
		return models.Request{}, models.ErrNotOwner
	}
	return req, nil
}

// UpdateOwnRequest lets the owning client amend the brief before acceptance.
func (s *RequestService) UpdateOwnRequest(ctx context.Context, req models.Request, userID int) error {
	existing, err := s.GetOwnRequest(ctx, req.ID, userID)
	if err != nil {
		return err
	}
	if lifecycle.NormalizeRequestStatus(existing.Status) == lifecycle.RequestStatusAccepted {
		return models.ErrRequestAccepted
	}
	if err := s.Lifecycle.ValidateSubmission(req); err != nil {
		return err
	}
	return s.RequestRepo.UpdateDetails(ctx, req)
}

func (s *RequestService) Quote(ctx context.Context, id int, amount float64) (models.Request, error) {
	req, err := s.RequestRepo.GetRequestByID(ctx, id)
	if err != nil {
		return models.Request{}, err
	}
	quoted, err := s.Lifecycle.Quote(req, amount)
	if err != nil {
		return models.Request{}, err
	}
	if err := s.RequestRepo.UpdateQuote(ctx, id, amount); err != nil {
		return models.Request{}, err
	}
	return quoted, nil
}

// Accept converts a request into a project. The flow is two writes with no
// transaction across them, so it is keyed in Redis: a retried accept returns
// the project created the first time instead of minting a duplicate.
func (s *RequestService) Accept(ctx context.Context, id int) (int, error) {
	key := fmt.Sprintf("accept:request:%d", id)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			if projectID, convErr := strconv.Atoi(cached); convErr == nil {
				return projectID, nil
			}
		}
	}

	req, err := s.RequestRepo.GetRequestByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if req.ProjectID != nil && lifecycle.NormalizeRequestStatus(req.Status) == lifecycle.RequestStatusAccepted {
		return *req.ProjectID, nil
	}

	seed, err := s.Lifecycle.AcceptSeed(req)
	if err != nil {
		return 0, err
	}
	project, err := s.ProjectRepo.CreateProject(ctx, seed)
	if err != nil {
		return 0, err
	}
	if err := s.RequestRepo.LinkProject(ctx, id, project.ID); err != nil {
		// A concurrent accept won the guard; surface the linked project
		// rather than the orphan we just created.
		if current, getErr := s.RequestRepo.GetRequestByID(ctx, id); getErr == nil && current.ProjectID != nil {
			return *current.ProjectID, nil
		}
		return 0, err
	}

	if s.Redis != nil {
		s.Redis.Set(ctx, key, strconv.Itoa(project.ID), acceptKeyTTL)
	}
	return project.ID, nil
}

func (s *RequestService) Reject(ctx context.Context, id int) (models.Request, error) {
	req, err := s.RequestRepo.GetRequestByID(ctx, id)
	if err != nil {
		return models.Request{}, err
	}
	rejected, err := s.Lifecycle.Reject(req)
	if err != nil {
		return models.Request{}, err
	}
	if err := s.RequestRepo.MarkRejected(ctx, id); err != nil {
		// The guard fires when an accept won between the fetch and the
		// write, and when a repeat reject changed nothing. Only the former
		// is an error.
		if errors.Is(err, models.ErrRequestAccepted) {
			if current, getErr := s.RequestRepo.GetRequestByID(ctx, id); getErr == nil &&
				lifecycle.NormalizeRequestStatus(current.Status) == lifecycle.RequestStatusRejected {
				return current, nil
			}
		}
		return models.Request{}, err
	}
	return rejected, nil
}

func (s *RequestService) AttachUpload(ctx context.Context, id, userID int, fileURL string) error {
	if _, err := s.GetOwnRequest(ctx, id, userID); err != nil {
		return err
	}
	return s.RequestRepo.AppendUpload(ctx, id, fileURL)
}
