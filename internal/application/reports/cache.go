package reports

import (
	"context"
	"time"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
)

// ReportCache cachea snapshots de reporte ya calculados. Los reportes son
// informativos y toleran leer estado levemente desactualizado (TTL corto),
// por lo que un cache es seguro; la implementación Noop desactiva el cacheo.
type ReportCache interface {
	Get(ctx context.Context, key string) (*dto.ReportDTO, bool, error)
	Set(ctx context.Context, key string, value *dto.ReportDTO, ttl time.Duration) error
}

// NoopReportCache no cachea nada (modo sin Redis).
type NoopReportCache struct{}

func (NoopReportCache) Get(_ context.Context, _ string) (*dto.ReportDTO, bool, error) {
	return nil, false, nil
}

func (NoopReportCache) Set(_ context.Context, _ string, _ *dto.ReportDTO, _ time.Duration) error {
	return nil
}
