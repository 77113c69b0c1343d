package main

import (
	"context"

	accountstore "gatehouse/internal/account/store"
	duesservice "gatehouse/internal/dues/service"
	duesstore "gatehouse/internal/dues/store"
	"gatehouse/internal/platform/database"
	regservice "gatehouse/internal/registration/service"
	regstore "gatehouse/internal/registration/store"
	residentstore "gatehouse/internal/resident/store"
	vehicleservice "gatehouse/internal/vehicle/service"
	vehiclestore "gatehouse/internal/vehicle/store"
	"gatehouse/pkg/platform/audit"
	auditpostgres "gatehouse/pkg/platform/audit/store/postgres"
)

type residentStore interface {
	regservice.ResidentStore
	Count(ctx context.Context) (int, error)
}

type auditStore interface {
	audit.Emitter
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

// stores holds either the Postgres or the in-memory implementation of every
// port. The tx fields stay nil in memory mode so services keep their defaults.
type stores struct {
	accounts      regservice.AccountStore
	residents     residentStore
	registrations regservice.RequestStore

	vehicles        vehicleservice.VehicleStore
	stickers        vehicleservice.StickerStore
	vehicleRequests vehicleservice.RequestStore

	duesConfigs  duesservice.ConfigStore
	duesPayments duesservice.PaymentStore
	duesLedger   duesservice.LedgerStore

	audit auditStore

	registrationTx regservice.StoreTx
	duesTx         duesservice.StoreTx
}

func newStores(pool *database.Pool) *stores {
	if pool == nil {
		return &stores{
			accounts:        accountstore.NewInMemory(),
			residents:       residentstore.NewInMemory(),
			registrations:   regstore.NewInMemory(),
			vehicles:        vehiclestore.NewInMemoryVehicles(),
			stickers:        vehiclestore.NewInMemoryStickers(),
			vehicleRequests: vehiclestore.NewInMemoryRequests(),
			duesConfigs:     duesstore.NewInMemoryConfigs(),
			duesPayments:    duesstore.NewInMemoryPayments(),
			duesLedger:      duesstore.NewInMemoryLedger(),
			audit:           audit.NewInMemoryStore(),
		}
	}

	db := pool.DB()
	tx := newPostgresTx(db)
	return &stores{
		accounts:        accountstore.NewPostgres(db),
		residents:       residentstore.NewPostgres(db),
		registrations:   regstore.NewPostgres(db),
		vehicles:        vehiclestore.NewPostgresVehicles(db),
		stickers:        vehiclestore.NewPostgresStickers(db),
		vehicleRequests: vehiclestore.NewPostgresRequests(db),
		duesConfigs:     duesstore.NewPostgresConfigs(db),
		duesPayments:    duesstore.NewPostgresPayments(db),
		duesLedger:      duesstore.NewPostgresLedger(db),
		audit:           auditpostgres.New(db),
		registrationTx:  tx,
		duesTx:          tx,
	}
}
