package service

import (
	"log/slog"

	"github.com/kirinyoku/tix-console/internal/clock"
	"github.com/kirinyoku/tix-console/internal/metrics"
	"github.com/kirinyoku/tix-console/internal/repository/memory"
	"github.com/kirinyoku/tix-console/internal/service/query"
	"github.com/kirinyoku/tix-console/internal/service/reservation"
)

type Services struct {
	Reservation *reservation.Service
	Query       *query.Service
}

type Config struct {
	Reservation reservation.Config
}

func NewServices(
	store *memory.Store,
	gateway reservation.Gateway,
	m *metrics.Metrics,
	clk clock.Clock,
	logger *slog.Logger,
	cfg Config,
) *Services {
	return &Services{
		Reservation: reservation.New(store, gateway, m, clk, logger, cfg.Reservation),
		Query:       query.New(store),
	}
}
