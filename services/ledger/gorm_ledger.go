package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	models "github.com/lazymak3r/zetik-backend-sub007/models/postgres"
)

// GormLedger implements Ledger on top of the asset_balances and
// ledger_entries tables.
type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

// AdjustStake moves one wager or payout. The whole adjustment runs in a
// transaction with the balance row locked FOR UPDATE; the unique index on
// the operation id turns a retried call into a read of the recorded
// outcome.
func (l *GormLedger) AdjustStake(ctx context.Context, req AdjustRequest) (Result, error) {
	if req.OperationID == "" {
		return Result{}, errors.New("missing operation id")
	}
	if req.Amount.IsNegative() {
		return Result{}, fmt.Errorf("negative adjustment amount %s", req.Amount)
	}

	var out Result
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Idempotency check: a replayed operation returns what happened
		// the first time.
		var existing models.LedgerEntry
		err := tx.Where("operation_id = ?", req.OperationID).First(&existing).Error
		if err == nil {
			log.Printf("[LEDGER] replayed operation %s for user %s", req.OperationID, req.UserID)
			out = Result{Success: true, Balance: existing.BalanceAfter}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		balance, err := lockBalance(tx, req.UserID, req.Asset)
		if err != nil {
			return err
		}

		var after decimal.Decimal
		switch req.Operation {
		case OpBet:
			if balance.Amount.LessThan(req.Amount) {
				out = Result{Success: false, Balance: balance.Amount, Err: "insufficient balance"}
				return nil
			}
			after = balance.Amount.Sub(req.Amount)
		case OpWin:
			after = balance.Amount.Add(req.Amount)
		default:
			return fmt.Errorf("unknown ledger operation %q", req.Operation)
		}

		if err := tx.Model(&models.AssetBalance{}).
			Where("username = ? AND asset = ?", req.UserID, req.Asset).
			Update("amount", after).Error; err != nil {
			return err
		}

		metadata, err := json.Marshal(req.Metadata)
		if err != nil {
			return err
		}
		entry := models.LedgerEntry{
			OperationID:  req.OperationID,
			Operation:    string(req.Operation),
			Username:     req.UserID,
			Asset:        req.Asset,
			Amount:       req.Amount,
			BalanceAfter: after,
			Description:  req.Description,
			Metadata:     metadata,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		out = Result{Success: true, Balance: after}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("ledger adjustment %s: %w", req.OperationID, err)
	}
	return out, nil
}

// Balance reads the user's current balance in an asset. A missing row is
// a zero balance, not an error.
func (l *GormLedger) Balance(ctx context.Context, userID, asset string) (decimal.Decimal, error) {
	var balance models.AssetBalance
	err := l.db.WithContext(ctx).
		Where("username = ? AND asset = ?", userID, asset).
		First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return balance.Amount, nil
}

// lockBalance loads the balance row FOR UPDATE, creating a zero row for a
// first-time (user, asset) pair.
func lockBalance(tx *gorm.DB, username, asset string) (*models.AssetBalance, error) {
	var balance models.AssetBalance
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("username = ? AND asset = ?", username, asset).
		First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		balance = models.AssetBalance{Username: username, Asset: asset, Amount: decimal.Zero}
		if err := tx.Create(&balance).Error; err != nil {
			return nil, err
		}
		return &balance, nil
	}
	if err != nil {
		return nil, err
	}
	return &balance, nil
}
