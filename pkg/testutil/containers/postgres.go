//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"gatehouse/migrations"
	id "gatehouse/pkg/domain"
)

// PostgresContainer wraps a testcontainers Postgres instance.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

// NewPostgresContainer starts a new Postgres container with migrations applied.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("gatehouse_test"),
		postgres.WithUsername("gatehouse"),
		postgres.WithPassword("gatehouse_test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	pc := &PostgresContainer{Container: container, DSN: dsn, DB: db}
	if err := pc.runMigrations(ctx); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to run migrations: %v", err)
	}

	// The container is shared through the Manager; Ryuk removes it when the
	// test process exits.
	return pc
}

// runMigrations executes all *.up.sql files from migrations.FS in name order.
func (p *PostgresContainer) runMigrations(ctx context.Context) error {
	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := fs.ReadFile(migrations.FS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if _, err := p.DB.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("execute migration %s: %w", file, err)
		}
	}
	return nil
}

// TruncateModuleTables clears every application table between tests.
func (p *PostgresContainer) TruncateModuleTables(ctx context.Context) error {
	_, err := p.DB.ExecContext(ctx, `TRUNCATE TABLE
		audit_events,
		dues_ledger_entries, dues_ledger, payments, dues_configs,
		vehicle_requests, vehicle_stickers, vehicles,
		registration_requests, residents, accounts
		CASCADE`)
	if err != nil {
		return fmt.Errorf("truncate module tables: %w", err)
	}
	return nil
}

// CreateTestAccount inserts an account row and returns its ID.
func (p *PostgresContainer) CreateTestAccount(ctx context.Context, t testing.TB, role string) id.AccountID {
	t.Helper()
	accountID := id.AccountID(uuid.New())
	_, err := p.DB.ExecContext(ctx, `
		INSERT INTO accounts (id, email, role) VALUES ($1, $2, $3)
	`, uuid.UUID(accountID), "acct-"+uuid.NewString()+"@example.com", role)
	if err != nil {
		t.Fatalf("CreateTestAccount: %v", err)
	}
	return accountID
}

// CreateTestResident inserts an unlinked resident at the given unit.
func (p *PostgresContainer) CreateTestResident(ctx context.Context, t testing.TB, email, lastName, phase, block, lot string) id.ResidentID {
	t.Helper()
	residentID := id.ResidentID(uuid.New())
	_, err := p.DB.ExecContext(ctx, `
		INSERT INTO residents (id, first_name, last_name, email, phase, block, lot)
		VALUES ($1, 'Test', $2, $3, $4, $5, $6)
	`, uuid.UUID(residentID), lastName, email, phase, block, lot)
	if err != nil {
		t.Fatalf("CreateTestResident: %v", err)
	}
	return residentID
}
