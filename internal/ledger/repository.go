// Package ledger persists the transaction collection through the kv
// port. Every mutation follows read-entire-collection, transform,
// write-entire-collection sequencing; there are no partial updates.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/kv"
	"fintrack/internal/log"
)

// Repository reads and writes the full transaction collection.
type Repository struct {
	store  kv.Store
	logger *log.Logger
}

func NewRepository(store kv.Store, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Repository{
		store:  store,
		logger: logger.WithComponent(log.ComponentLedger),
	}
}

// Load reads the stored collection, applying the legacy migration and
// persisting the corrected form before returning it. An absent key or
// unparseable value degrades to an empty collection: the caller always
// gets something to render.
func (r *Repository) Load(ctx context.Context) ([]core.Transaction, error) {
	raw, ok, err := r.store.Get(ctx, kv.KeyExpenses)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	if !ok || raw == "" {
		return []core.Transaction{}, nil
	}

	var txs []core.Transaction
	if err := json.Unmarshal([]byte(raw), &txs); err != nil {
		r.logger.WarnContext(ctx, "Stored transactions are malformed, starting empty",
			log.FieldKey, kv.KeyExpenses, log.FieldError, err)
		return []core.Transaction{}, nil
	}

	migrated, changed := MigrateLegacy(txs)
	if changed {
		if err := r.Save(ctx, migrated); err != nil {
			return nil, fmt.Errorf("persist migrated transactions: %w", err)
		}
		r.logger.InfoContext(ctx, "Migrated legacy ledger to signed amounts",
			log.FieldTxCount, len(migrated))
	}

	return migrated, nil
}

// Save serializes and writes the full collection, replacing prior
// content.
func (r *Repository) Save(ctx context.Context, txs []core.Transaction) error {
	if txs == nil {
		txs = []core.Transaction{}
	}
	data, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("marshal transactions: %w", err)
	}
	if err := r.store.Set(ctx, kv.KeyExpenses, string(data)); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	return nil
}

// Append loads the collection, appends the transaction, and writes the
// collection back.
func (r *Repository) Append(ctx context.Context, tx core.Transaction) error {
	txs, err := r.Load(ctx)
	if err != nil {
		return err
	}
	txs = append(txs, tx)
	if err := r.Save(ctx, txs); err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "Transaction appended",
		log.FieldTxID, tx.ID,
		log.FieldAmount, tx.Amount.String(),
		log.FieldCategory, tx.Category,
		log.FieldDate, tx.Date.String())
	return nil
}

// Remove deletes the transaction with the given id. An unknown id is a
// silent no-op, but the collection is still written back.
func (r *Repository) Remove(ctx context.Context, id int64) error {
	txs, err := r.Load(ctx)
	if err != nil {
		return err
	}
	kept := txs[:0]
	for _, t := range txs {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	removed := len(txs) - len(kept)
	if err := r.Save(ctx, kept); err != nil {
		return err
	}
	if removed > 0 {
		r.logger.InfoContext(ctx, "Transaction removed", log.FieldTxID, id)
	}
	return nil
}
