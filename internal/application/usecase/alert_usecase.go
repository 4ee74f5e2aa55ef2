package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/dto"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
)

// ErrInvalidAction unknown bulk action.
var ErrInvalidAction = fmt.Errorf("invalid action: %w", domain.ErrInvalidInput)

// AlertUseCase alert listing, manual alerts and read/resolve actions.
type AlertUseCase struct {
	repo repository.AlertRepository
}

// NewAlertUseCase builds the use-case.
func NewAlertUseCase(repo repository.AlertRepository) *AlertUseCase {
	return &AlertUseCase{repo: repo}
}

// List alerts matching the query; empty or "all" disables a filter.
func (uc *AlertUseCase) List(ctx context.Context, q dto.AlertListQuery) ([]dto.AlertResponse, error) {
	f, err := parseAlertQuery(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("alerts.List: %w", err)
	}
	return dto.NewAlertResponses(list), nil
}

func parseAlertQuery(q dto.AlertListQuery) (repository.AlertFilter, error) {
	var f repository.AlertFilter
	if q.Severity != "" && q.Severity != "all" {
		s := entity.AlertSeverity(q.Severity)
		if !s.Valid() {
			return f, domain.ErrInvalidInput
		}
		f.Severity = &s
	}
	if q.Type != "" && q.Type != "all" {
		t := entity.AlertType(q.Type)
		if !t.Valid() {
			return f, domain.ErrInvalidInput
		}
		f.Type = &t
	}
	var err error
	if f.IsRead, err = parseFlag(q.IsRead); err != nil {
		return f, err
	}
	if f.IsResolved, err = parseFlag(q.IsResolved); err != nil {
		return f, err
	}
	return f, nil
}

func parseFlag(v string) (*bool, error) {
	if v == "" || v == "all" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &b, nil
}

// Create stores a manual alert. Unknown references yield domain.ErrNotFound.
func (uc *AlertUseCase) Create(ctx context.Context, in dto.CreateAlertRequest) (*dto.AlertResponse, error) {
	if !in.Type.Valid() || !in.Severity.Valid() || in.Title == "" || in.Message == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	a := &entity.Alert{
		ID:              uuid.NewString(),
		Type:            in.Type,
		Severity:        in.Severity,
		Title:           in.Title,
		Message:         in.Message,
		SupplierID:      in.SupplierID,
		ShipmentID:      in.ShipmentID,
		InventoryItemID: in.InventoryItemID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("alerts.Create: %w", err)
	}
	out := dto.NewAlertResponse(a)
	return &out, nil
}

// Update changes only the flags present in the request.
func (uc *AlertUseCase) Update(ctx context.Context, id string, in dto.UpdateAlertRequest) (*dto.AlertResponse, error) {
	if in.IsRead != nil || in.IsResolved != nil {
		err := uc.repo.UpdateFlags(ctx, id, repository.AlertFlags{IsRead: in.IsRead, IsResolved: in.IsResolved})
		if err != nil {
			return nil, fmt.Errorf("alerts.Update: %w", err)
		}
	}
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("alerts.Update: %w", err)
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewAlertResponse(a)
	return &out, nil
}

// Delete removes one alert.
func (uc *AlertUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("alerts.Delete: %w", err)
	}
	return nil
}

// Bulk applies one action to many alerts. Resolving also marks as read;
// unresolving leaves the read flag alone.
func (uc *AlertUseCase) Bulk(ctx context.Context, in dto.BulkAlertRequest) (*dto.BulkAlertResponse, error) {
	yes, no := true, false
	var flags repository.AlertFlags
	switch in.Action {
	case dto.BulkMarkAsRead:
		flags.IsRead = &yes
	case dto.BulkMarkAsUnread:
		flags.IsRead = &no
	case dto.BulkResolve:
		flags.IsResolved, flags.IsRead = &yes, &yes
	case dto.BulkUnresolve:
		flags.IsResolved = &no
	default:
		return nil, ErrInvalidAction
	}
	n, err := uc.repo.BulkUpdateFlags(ctx, in.AlertIDs, flags)
	if err != nil {
		return nil, fmt.Errorf("alerts.Bulk: %w", err)
	}
	return &dto.BulkAlertResponse{
		Message: fmt.Sprintf("Successfully updated %d alerts", n),
		Count:   n,
	}, nil
}
