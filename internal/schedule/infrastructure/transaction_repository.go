package infrastructure

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/smartspend/SmartSpend/internal/schedule/domain"
)

type TransactionRepository struct {
	db *sql.DB
}

func safeRollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		log.Printf("Error during transaction rollback: %v", err)
	}
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, user_id, type, name, category, amount, date, status, schedule, is_recurring, source_template_id, created_at`

func (r *TransactionRepository) Save(transaction domain.Transaction) error {
	scheduleJSON, err := marshalSchedule(transaction.Schedule)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(
		`INSERT INTO transactions
        (id, user_id, type, name, category, amount, date, status, schedule, is_recurring, source_template_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		transaction.ID, transaction.UserID, transaction.Type, transaction.Name, transaction.Category,
		transaction.Amount, transaction.Date, nullableStatus(transaction.Status), scheduleJSON,
		transaction.IsRecurring, nullableString(transaction.SourceTemplateID), transaction.CreatedAt,
	)
	return err
}

func (r *TransactionRepository) SaveAll(transactions []domain.Transaction) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	for _, transaction := range transactions {
		scheduleJSON, err := marshalSchedule(transaction.Schedule)
		if err != nil {
			safeRollback(tx)
			return err
		}
		if _, err := tx.Exec(
			`INSERT INTO transactions
            (id, user_id, type, name, category, amount, date, status, schedule, is_recurring, source_template_id, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			transaction.ID, transaction.UserID, transaction.Type, transaction.Name, transaction.Category,
			transaction.Amount, transaction.Date, nullableStatus(transaction.Status), scheduleJSON,
			transaction.IsRecurring, nullableString(transaction.SourceTemplateID), transaction.CreatedAt,
		); err != nil {
			safeRollback(tx)
			return err
		}
	}
	return tx.Commit()
}

func (r *TransactionRepository) FindByUser(userID string) ([]domain.Transaction, error) {
	rows, err := r.db.Query(
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 ORDER BY date, created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *transaction)
	}
	return transactions, rows.Err()
}

func (r *TransactionRepository) FindByID(transactionID string) (*domain.Transaction, error) {
	row := r.db.QueryRow(
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, transactionID)
	transaction, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

func (r *TransactionRepository) Update(transaction domain.Transaction) error {
	scheduleJSON, err := marshalSchedule(transaction.Schedule)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(
		`UPDATE transactions
        SET type = $2, name = $3, category = $4, amount = $5, date = $6, status = $7,
            schedule = $8, is_recurring = $9, source_template_id = $10
        WHERE id = $1`,
		transaction.ID, transaction.Type, transaction.Name, transaction.Category, transaction.Amount,
		transaction.Date, nullableStatus(transaction.Status), scheduleJSON, transaction.IsRecurring,
		nullableString(transaction.SourceTemplateID),
	)
	return err
}

func (r *TransactionRepository) UpdateSchedule(transactionID string, schedule *domain.Schedule) error {
	scheduleJSON, err := marshalSchedule(schedule)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`UPDATE transactions SET schedule = $2 WHERE id = $1`, transactionID, scheduleJSON)
	return err
}

func (r *TransactionRepository) ListUserIDs() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT user_id FROM transactions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, userID)
	}
	return userIDs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var transaction domain.Transaction
	var date time.Time
	var status, sourceTemplateID sql.NullString
	var scheduleJSON []byte
	if err := row.Scan(
		&transaction.ID, &transaction.UserID, &transaction.Type, &transaction.Name, &transaction.Category,
		&transaction.Amount, &date, &status, &scheduleJSON, &transaction.IsRecurring,
		&sourceTemplateID, &transaction.CreatedAt,
	); err != nil {
		return nil, err
	}
	transaction.Date = date.Format(domain.DateLayout)
	transaction.Status = domain.TransactionStatus(status.String)
	transaction.SourceTemplateID = sourceTemplateID.String
	if len(scheduleJSON) > 0 {
		var schedule domain.Schedule
		if err := json.Unmarshal(scheduleJSON, &schedule); err != nil {
			return nil, fmt.Errorf("decoding schedule for transaction %s: %w", transaction.ID, err)
		}
		transaction.Schedule = &schedule
	}
	return &transaction, nil
}

func marshalSchedule(schedule *domain.Schedule) ([]byte, error) {
	if schedule == nil {
		return nil, nil
	}
	return json.Marshal(schedule)
}

func nullableString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func nullableStatus(status domain.TransactionStatus) sql.NullString {
	return nullableString(string(status))
}
