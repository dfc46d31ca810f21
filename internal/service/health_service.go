package service

import (
	"context"
	"time"

	"cliper/internal/models"
	"cliper/internal/repository"
)

type PingFunc func(ctx context.Context) error

// HealthChecks holds one probe per dependency; a nil probe is reported as not configured.
type HealthChecks struct {
	Database PingFunc
	Storage  PingFunc
	Redis    PingFunc
	Broker   PingFunc
}

type HealthService interface {
	Check(ctx context.Context) models.HealthStatus
}

type healthService struct {
	tablesRepo repository.TablesRepository
	checks     HealthChecks
}

func NewHealthService(tablesRepo repository.TablesRepository, checks HealthChecks) HealthService {
	return &healthService{tablesRepo: tablesRepo, checks: checks}
}

func probe(ctx context.Context, fn PingFunc) string {
	if fn == nil {
		return models.StatusNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		return models.StatusUnavailable
	}
	return models.StatusConnected
}

func (h *healthService) Check(ctx context.Context) models.HealthStatus {
	status := models.HealthStatus{
		Status:   "OK",
		Message:  "Cliper API is running",
		Database: probe(ctx, h.checks.Database),
		Storage:  probe(ctx, h.checks.Storage),
		Redis:    probe(ctx, h.checks.Redis),
		Broker:   probe(ctx, h.checks.Broker),
	}

	if status.Database != models.StatusConnected {
		status.Status = "DEGRADED"
		return status
	}

	if h.tablesRepo != nil {
		if count, err := h.tablesRepo.CountTablesDB(ctx); err == nil {
			status.Tables = count
		}
	}

	return status
}
