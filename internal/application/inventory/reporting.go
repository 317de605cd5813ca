package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/resto-inventario-api/internal/application/dto"
	"github.com/jhoicas/resto-inventario-api/internal/domain/entity"
	"github.com/jhoicas/resto-inventario-api/internal/domain/repository"
)

// ReportingUseCase lecturas derivadas: alertas de stock bajo y estadísticas.
// Puramente de consulta; dos llamadas sin mutaciones intermedias devuelven
// exactamente lo mismo.
type ReportingUseCase struct {
	itemRepo  repository.ItemRepository
	scanLimit int
}

// NewReportingUseCase construye el caso de uso.
func NewReportingUseCase(itemRepo repository.ItemRepository, scanLimit int) *ReportingUseCase {
	if scanLimit <= 0 {
		scanLimit = 500
	}
	return &ReportingUseCase{itemRepo: itemRepo, scanLimit: scanLimit}
}

// CheckLowStock escanea los insumos en o por debajo del mínimo y deriva la
// severidad: CRITICAL con stock en cero, WARNING en o por debajo del mínimo.
// outletID vacío escanea todas las sucursales del tenant.
func (uc *ReportingUseCase) CheckLowStock(ctx context.Context, tenantID, outletID string) ([]dto.LowStockAlertDTO, error) {
	items, _, err := uc.itemRepo.List(repository.ItemFilter{
		TenantID:     tenantID,
		OutletID:     outletID,
		LowStockOnly: true,
		Limit:        uc.scanLimit,
	})
	if err != nil {
		return nil, err
	}

	alerts := make([]dto.LowStockAlertDTO, 0, len(items))
	for _, item := range items {
		severity := entity.AlertSeverity(item)
		if severity == "" {
			continue
		}
		var msg string
		if severity == entity.SeverityCritical {
			msg = fmt.Sprintf("%s agotado en la sucursal %s", item.Name, item.OutletID)
		} else {
			msg = fmt.Sprintf("%s bajo: %s %s (mínimo %s)", item.Name,
				item.CurrentStock.String(), item.Unit, item.MinimumStock.String())
		}
		alerts = append(alerts, dto.LowStockAlertDTO{
			ItemID:       item.ID,
			ItemName:     item.Name,
			OutletID:     item.OutletID,
			CurrentStock: item.CurrentStock,
			MinimumStock: item.MinimumStock,
			Unit:         item.Unit,
			Severity:     severity,
			Message:      msg,
		})
	}
	return alerts, nil
}

// GetStatistics agregados de inventario para el dashboard.
func (uc *ReportingUseCase) GetStatistics(ctx context.Context, tenantID, outletID string) (*dto.StatisticsDTO, error) {
	stats, err := uc.itemRepo.Stats(tenantID, outletID)
	if err != nil {
		return nil, err
	}
	return &dto.StatisticsDTO{
		OutletID:        outletID,
		ItemCount:       stats.ItemCount,
		TotalStockValue: stats.TotalStockValue,
		LowStockCount:   stats.LowStockCount,
		OutOfStockCount: stats.OutOfStockCount,
	}, nil
}
