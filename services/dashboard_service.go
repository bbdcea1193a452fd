package services

import (
	"context"
	"time"
	"warehouse-app/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DashboardDays is how far back the dashboard lists documents.
const DashboardDays = 30

type DashboardService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewDashboardService(db *gorm.DB, log *zap.Logger) *DashboardService {
	return &DashboardService{db: db, log: log.Named("dashboard")}
}

type Dashboard struct {
	Stock     []repositories.WarehouseStock  `json:"stock"`
	Documents []repositories.DocumentSummary `json:"documents"`
}

func (s *DashboardService) GetDashboard(ctx context.Context, session Session) (*Dashboard, error) {
	ids, visible := session.scope(nil)
	if !visible {
		return &Dashboard{Stock: []repositories.WarehouseStock{}, Documents: []repositories.DocumentSummary{}}, nil
	}

	repo := repositories.NewDashboardRepository(s.db.WithContext(ctx))
	stock, err := repo.StockTotals(ids)
	if err != nil {
		return nil, classify(s.log, "dashboard_stock", err)
	}
	now := time.Now()
	since := time.Date(now.Year(), now.Month(), now.Day()-DashboardDays, 0, 0, 0, 0, now.Location())
	docs, err := repo.RecentDocuments(since, ids)
	if err != nil {
		return nil, classify(s.log, "dashboard_documents", err)
	}
	return &Dashboard{Stock: stock, Documents: docs}, nil
}
