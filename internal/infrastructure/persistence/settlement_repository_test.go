package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	appsettlement "github.com/dukkan/backend/internal/application/settlement"
	"github.com/dukkan/backend/internal/domain/settlement"
	"github.com/dukkan/backend/internal/domain/shared"
	"github.com/dukkan/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.DebtModel{},
		&models.CashLedgerModel{},
		&models.ExchangeRateModel{},
	))
	return db
}

func newTestDebt(t *testing.T, debtor string, usd, iqd int64) *settlement.Debt {
	t.Helper()
	tag := settlement.CurrencyTagMulti
	if iqd == 0 {
		tag = settlement.CurrencyTagUSD
	} else if usd == 0 {
		tag = settlement.CurrencyTagIQD
	}
	d, err := settlement.NewDebt(debtor, settlement.DebtKindCustomer, tag,
		decimal.NewFromInt(usd), decimal.NewFromInt(iqd), nil, "", "")
	require.NoError(t, err)
	return d
}

func TestGormDebtRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDebtRepository(db)
	ctx := context.Background()

	debt := newTestDebt(t, "Ali Hassan", 100, 0)
	require.NoError(t, debt.ApplyPayment(decimal.NewFromInt(40), decimal.Zero, decimal.NewFromInt(1500), "partial"))
	require.NoError(t, repo.Save(ctx, debt))

	found, err := repo.FindByID(ctx, debt.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, "ali hassan", found.DebtorKey)
	assert.Equal(t, settlement.DebtStatusPartial, found.Status)
	assert.True(t, found.OriginalUSD.Equal(decimal.NewFromInt(100)))
	assert.True(t, found.PaidUSD.Equal(decimal.NewFromInt(40)))
	require.Len(t, found.PaymentEntries, 1, "payment entries survive the JSON column")
	assert.Equal(t, "partial", found.PaymentEntries[0].Note)
	assert.Equal(t, 2, found.Version)
}

func TestGormDebtRepository_FindByID_Missing(t *testing.T) {
	repo := NewGormDebtRepository(setupTestDB(t))
	found, err := repo.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestGormDebtRepository_FrozenRateRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDebtRepository(db)
	ctx := context.Background()

	frozen := decimal.NewFromInt(1450)
	debt, err := settlement.NewDebt("Omar", settlement.DebtKindCompany, settlement.CurrencyTagIQD,
		decimal.Zero, decimal.NewFromInt(50000), &frozen, "", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, debt))

	found, err := repo.FindByID(ctx, debt.ID)
	require.NoError(t, err)
	require.NotNil(t, found.ExchangeRateAtCreation)
	assert.True(t, found.ExchangeRateAtCreation.Equal(frozen))
}

func TestGormDebtRepository_SaveWithLock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDebtRepository(db)
	ctx := context.Background()
	rate := decimal.NewFromInt(1500)

	debt := newTestDebt(t, "Ali", 100, 0)
	require.NoError(t, repo.Save(ctx, debt))

	t.Run("succeeds at the expected version", func(t *testing.T) {
		loaded, err := repo.FindByID(ctx, debt.ID)
		require.NoError(t, err)
		require.NoError(t, loaded.ApplyPayment(decimal.NewFromInt(10), decimal.Zero, rate, ""))
		require.NoError(t, repo.SaveWithLock(ctx, loaded))

		reloaded, err := repo.FindByID(ctx, debt.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, reloaded.Version)
		assert.True(t, reloaded.PaidUSD.Equal(decimal.NewFromInt(10)))
	})

	t.Run("detects a concurrent writer", func(t *testing.T) {
		first, err := repo.FindByID(ctx, debt.ID)
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, debt.ID)
		require.NoError(t, err)

		require.NoError(t, first.ApplyPayment(decimal.NewFromInt(5), decimal.Zero, rate, ""))
		require.NoError(t, repo.SaveWithLock(ctx, first))

		require.NoError(t, second.ApplyPayment(decimal.NewFromInt(5), decimal.Zero, rate, ""))
		err = repo.SaveWithLock(ctx, second)
		assert.ErrorIs(t, err, shared.ErrConcurrentModification)
	})
}

func TestGormDebtRepository_FindOpenByDebtor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDebtRepository(db)
	ctx := context.Background()
	rate := decimal.NewFromInt(1500)

	oldest := newTestDebt(t, "Ali", 40, 0)
	oldest.CreatedAt = time.Now().Add(-48 * time.Hour)
	newest := newTestDebt(t, "ali", 20, 0)

	paid := newTestDebt(t, "Ali", 10, 0)
	require.NoError(t, paid.ApplyPayment(decimal.NewFromInt(10), decimal.Zero, rate, ""))

	other := newTestDebt(t, "Omar", 99, 0)

	for _, d := range []*settlement.Debt{newest, oldest, paid, other} {
		require.NoError(t, repo.Save(ctx, d))
	}

	open, err := repo.FindOpenByDebtor(ctx, "ali")
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, oldest.ID, open[0].ID, "oldest first")
	assert.Equal(t, newest.ID, open[1].ID)
}

func TestGormDebtRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDebtRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newTestDebt(t, "Ali", 100, 0)))
	require.NoError(t, repo.Save(ctx, newTestDebt(t, "Omar", 0, 50000)))
	reversed := newTestDebt(t, "Ali", 10, 0)
	_, _, err := reversed.Reverse("void")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, reversed))

	t.Run("filter by debtor", func(t *testing.T) {
		key := "ali"
		page, err := repo.FindAll(ctx, settlement.DebtFilter{DebtorKey: &key})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.Total)
	})

	t.Run("open only", func(t *testing.T) {
		page, err := repo.FindAll(ctx, settlement.DebtFilter{OpenOnly: true})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.Total)
		for _, d := range page.Items {
			assert.NotEqual(t, settlement.DebtStatusReversed, d.Status)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := repo.FindAll(ctx, settlement.DebtFilter{
			Filter: shared.Filter{Page: 1, PageSize: 2},
		})
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.EqualValues(t, 3, page.Total)
		assert.Equal(t, 2, page.TotalPages)
	})
}

func TestGormDebtRepository_SummarizeOutstanding(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDebtRepository(db)
	ctx := context.Background()
	rate := decimal.NewFromInt(1500)

	first := newTestDebt(t, "Ali", 100, 0)
	require.NoError(t, first.ApplyPayment(decimal.NewFromInt(40), decimal.Zero, rate, ""))
	second := newTestDebt(t, "ali", 0, 30000)
	settled := newTestDebt(t, "Ali", 5, 0)
	require.NoError(t, settled.ApplyPayment(decimal.NewFromInt(5), decimal.Zero, rate, ""))
	other := newTestDebt(t, "Omar", 7, 0)

	for _, d := range []*settlement.Debt{first, second, settled, other} {
		require.NoError(t, repo.Save(ctx, d))
	}

	summaries, err := repo.SummarizeOutstanding(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byKey := map[string]settlement.OutstandingSummary{}
	for _, s := range summaries {
		byKey[s.DebtorKey] = s
	}
	ali := byKey["ali"]
	assert.Equal(t, 2, ali.OpenCount)
	assert.True(t, ali.TotalUSD.Equal(decimal.NewFromInt(60)))
	assert.True(t, ali.TotalIQD.Equal(decimal.NewFromInt(30000)))
	assert.Equal(t, 1, byKey["omar"].OpenCount)
}

func TestGormLedgerRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormLedgerRepository(db)
	ctx := context.Background()

	missing, err := repo.FindByName(ctx, "main")
	require.NoError(t, err)
	assert.Nil(t, missing)

	ledger := settlement.NewCashLedger("main")
	require.NoError(t, ledger.Credit(decimal.NewFromInt(100), decimal.NewFromInt(50000)))
	require.NoError(t, repo.Save(ctx, ledger))

	found, err := repo.FindByName(ctx, "main")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.BalanceUSD.Equal(decimal.NewFromInt(100)))
	assert.True(t, found.BalanceIQD.Equal(decimal.NewFromInt(50000)))

	t.Run("optimistic lock", func(t *testing.T) {
		first, err := repo.FindByName(ctx, "main")
		require.NoError(t, err)
		second, err := repo.FindByName(ctx, "main")
		require.NoError(t, err)

		require.NoError(t, first.Credit(decimal.NewFromInt(1), decimal.Zero))
		require.NoError(t, repo.SaveWithLock(ctx, first))

		require.NoError(t, second.Credit(decimal.NewFromInt(1), decimal.Zero))
		err = repo.SaveWithLock(ctx, second)
		assert.ErrorIs(t, err, shared.ErrConcurrentModification)
	})
}

func TestGormExchangeRateRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormExchangeRateRepository(db)
	ctx := context.Background()

	missing, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, missing)

	older, err := settlement.NewExchangeRate(decimal.NewFromInt(1400), "seed")
	require.NoError(t, err)
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Save(ctx, older))

	newer, err := settlement.NewExchangeRate(decimal.NewFromInt(1500), "market")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, newer))

	current, err := repo.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.True(t, current.Rate.Equal(decimal.NewFromInt(1500)))

	history, err := repo.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].Rate.Equal(decimal.NewFromInt(1500)), "newest first")
}

func TestGormTransactionScope_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	scope := NewGormTransactionScope(db)
	ctx := context.Background()

	debt := newTestDebt(t, "Ali", 100, 0)
	boom := errors.New("boom")

	err := scope.Execute(ctx, func(repos appsettlement.TransactionalRepositories) error {
		if err := repos.DebtRepo().Save(ctx, debt); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	found, err := NewGormDebtRepository(db).FindByID(ctx, debt.ID)
	require.NoError(t, err)
	assert.Nil(t, found, "rolled-back save must not persist")
}

func TestGormTransactionScope_Commits(t *testing.T) {
	db := setupTestDB(t)
	scope := NewGormTransactionScope(db)
	ctx := context.Background()

	debt := newTestDebt(t, "Ali", 100, 0)
	ledger := settlement.NewCashLedger("main")

	err := scope.Execute(ctx, func(repos appsettlement.TransactionalRepositories) error {
		if err := repos.DebtRepo().Save(ctx, debt); err != nil {
			return err
		}
		return repos.LedgerRepo().Save(ctx, ledger)
	})
	require.NoError(t, err)

	found, err := NewGormDebtRepository(db).FindByID(ctx, debt.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)

	foundLedger, err := NewGormLedgerRepository(db).FindByName(ctx, "main")
	require.NoError(t, err)
	assert.NotNil(t, foundLedger)
}
