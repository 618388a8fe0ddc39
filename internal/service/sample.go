package service

import (
	"context"
	"sort"
	"time"

	"github.com/nephrolog/nephrolog-sync/internal/models"
	"github.com/nephrolog/nephrolog-sync/internal/repository"
	"github.com/nephrolog/nephrolog-sync/internal/types"
)

// SampleService assembles quantity-sample reads from the local store and
// the device sensor. Device data is merged into derived reads only; it
// never decides freshness and is never persisted implicitly.
type SampleService struct {
	samples *repository.QuantitySampleRepository
	sensor  DeviceSensor
}

func NewSampleService(samples *repository.QuantitySampleRepository, sensor DeviceSensor) *SampleService {
	return &SampleService{samples: samples, sensor: sensor}
}

// GetRange returns the stored samples of one type inside [start, end),
// merged with device-sourced samples for the same window, ascending by
// creation time.
func (s *SampleService) GetRange(ctx context.Context, uc types.UserContext, sampleType models.SampleType, start, end time.Time) ([]*models.QuantitySample, error) {
	stored, err := s.samples.GetRange(ctx, uc, sampleType, start, end)
	if err != nil {
		return nil, err
	}

	merged := stored
	if s.sensor != nil {
		device, err := s.sensor.Range(ctx, sampleType, start, end)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]struct{}, len(stored))
		for _, sample := range stored {
			seen[sampleKey(sample)] = struct{}{}
		}
		for _, sample := range device {
			if _, dup := seen[sampleKey(sample)]; !dup {
				merged = append(merged, sample)
			}
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.Before(merged[j].CreatedAt)
	})
	return merged, nil
}

// TodayValue reads today's device value for a sample type.
func (s *SampleService) TodayValue(ctx context.Context, sampleType models.SampleType) (float64, bool, error) {
	if s.sensor == nil {
		return 0, false, nil
	}
	return s.sensor.TodayValue(ctx, sampleType)
}

// Record saves a sample to the device sensor, then persists it locally.
// The sensor write must succeed first; the store is the system of record
// for user scoping.
func (s *SampleService) Record(ctx context.Context, uc types.UserContext, sample *models.QuantitySample) (*models.QuantitySample, error) {
	if s.sensor != nil {
		if err := s.sensor.Save(ctx, sample); err != nil {
			return nil, err
		}
	}
	sample.SetOwner(uc.UserID)
	saved, err := s.samples.Insert(ctx, []*models.QuantitySample{sample})
	if err != nil {
		return nil, err
	}
	return saved[0], nil
}

func sampleKey(sample *models.QuantitySample) string {
	return string(sample.Type) + "|" + sample.CreatedAt.UTC().Format(time.RFC3339)
}
