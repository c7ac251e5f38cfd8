package tick

import (
	"context"

	"github.com/colonyops/tick/internal/core/config"
	"github.com/colonyops/tick/internal/core/doctor"
)

// DoctorService runs health checks on the tick setup.
type DoctorService struct {
	config  *config.Config
	storage Storage
}

// NewDoctorService creates a new DoctorService.
func NewDoctorService(cfg *config.Config, storage Storage) *DoctorService {
	return &DoctorService{
		config:  cfg,
		storage: storage,
	}
}

// RunChecks executes all doctor checks and returns results.
func (d *DoctorService) RunChecks(ctx context.Context, configPath string) []doctor.Result {
	checks := []doctor.Check{
		doctor.NewConfigCheck(d.config, configPath),
		doctor.NewStorageCheck(doctor.StorageProbe{
			KV:       d.storage.KV,
			Backend:  string(d.storage.Backend),
			Location: d.storage.Location(),
			OpenErr:  d.storage.OpenErr,
		}),
	}
	return doctor.RunAll(ctx, checks)
}
