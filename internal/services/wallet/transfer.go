package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/srjn0201/betting/internal/infra/pgutils"
	"github.com/srjn0201/betting/internal/repos/accounts"
	"github.com/srjn0201/betting/internal/repos/ledger"
)

// Transfer moves amountMinor from sender to the named recipient as a
// matched TRANSFER_DEBIT/TRANSFER_CREDIT pair. Gates run in order and
// any failure leaves the log untouched:
//
// 1) the most junior role never sends;
// 2) the recipient must resolve;
// 3) a non-root sender may only fund accounts it directly created;
// 4) the derived balance must cover the amount, checked under a FOR
//    UPDATE lock on the sender row inside the same transaction that
//    appends the pair, so concurrent transfers from one sender are
//    serialized and the balance can never go negative.
//
// Both entries carry the sender even on the credit side, preserving
// provenance of who funded the recipient.
func (s *Service) Transfer(ctx context.Context, sender accounts.Account, recipientUsername string, amountMinor int64) error {
	if amountMinor <= 0 {
		return ErrInvalidAmount
	}

	if !sender.Role.CanSendTransfers() {
		return ErrTransferNotAllowed
	}

	recipient, err := s.accounts.ByUsername(ctx, recipientUsername)
	if err != nil {
		if errors.Is(err, accounts.ErrAccountNotFound) {
			return ErrRecipientNotFound
		}

		return fmt.Errorf("resolve recipient: %w", err)
	}

	// Role and parent are immutable after creation, so the hierarchy
	// gate can run before the transaction opens.
	if !sender.Role.TransfersToAnyone() {
		if recipient.ParentID == nil || *recipient.ParentID != sender.ID {
			return ErrTransferNotAllowed
		}
	}

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.accounts.Lock(tx, sender.ID)
		if err != nil {
			return fmt.Errorf("lock sender: %w", err)
		}

		balance, err := s.BalanceIn(ctx, tx, sender.ID)
		if err != nil {
			return fmt.Errorf("balance under lock: %w", err)
		}

		if balance < amountMinor {
			return ErrInsufficientFunds
		}

		senderID := sender.ID

		_, err = s.entries.Insert(tx, ledger.Entry{
			SenderID:    &senderID,
			RecipientID: recipient.ID,
			AmountMinor: amountMinor,
			Kind:        ledger.KindTransferDebit,
		})
		if err != nil {
			return fmt.Errorf("append debit: %w", err)
		}

		_, err = s.entries.Insert(tx, ledger.Entry{
			SenderID:    &senderID,
			RecipientID: recipient.ID,
			AmountMinor: amountMinor,
			Kind:        ledger.KindTransferCredit,
		})
		if err != nil {
			return fmt.Errorf("append credit: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			return ErrInsufficientFunds
		}

		return fmt.Errorf("transfer: %w", err)
	}

	return nil
}

// Deposit appends a SYSTEM_DEPOSIT credit with no sender. Used by
// operational tooling to fund the root account; not reachable from the
// public API.
func (s *Service) Deposit(ctx context.Context, recipientID, amountMinor int64) error {
	if amountMinor <= 0 {
		return ErrInvalidAmount
	}

	_, err := s.accounts.ByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, accounts.ErrAccountNotFound) {
			return ErrRecipientNotFound
		}

		return fmt.Errorf("resolve recipient: %w", err)
	}

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := s.entries.Insert(tx, ledger.Entry{
			RecipientID: recipientID,
			AmountMinor: amountMinor,
			Kind:        ledger.KindSystemDeposit,
		})
		if err != nil {
			return fmt.Errorf("append deposit: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("deposit: %w", err)
	}

	return nil
}
