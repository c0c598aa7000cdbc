package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	rates "github.com/malusev998/privatbank-rates"
)

const MySQLTimeFormat = "2006-01-02 15:04:05"

type (
	IDGenerator interface {
		Generate() []byte
	}

	UUIDGenerator struct{}

	sqlStorage struct {
		db          *sql.DB
		tableName   string
		idGenerator IDGenerator
	}
)

var ErrNotEnoughBytesInGenerator = errors.New("id generator must return at least 16 bytes")

func (UUIDGenerator) Generate() []byte {
	id := uuid.New()
	return id[:]
}

func NewMySQLStorage(ctx context.Context, c MySQLConfig) (rates.Storage, error) {
	db, err := sql.Open("mysql", c.ConnectionString)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error while connecting to mysql: %w", err)
	}

	st, err := NewSQLStorage(ctx, db, c.IDGenerator, c.TableName, c.Migrate)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return st, nil
}

// NewSQLStorage wraps an already opened database. The storage takes
// ownership of db and closes it on Close.
func NewSQLStorage(ctx context.Context, db *sql.DB, idGenerator IDGenerator, tableName string, migrate bool) (rates.Storage, error) {
	if idGenerator == nil {
		idGenerator = UUIDGenerator{}
	}

	if tableName == "" {
		tableName = "exchange_rates"
	}

	st := sqlStorage{
		db:          db,
		tableName:   tableName,
		idGenerator: idGenerator,
	}

	if migrate {
		if err := st.Migrate(ctx); err != nil {
			return nil, err
		}
	}

	return st, nil
}

func (s sqlStorage) GetStorageProviderName() string {
	return string(MySQL)
}

func (s sqlStorage) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s(
	id BINARY(16) PRIMARY KEY,
	date DATE NOT NULL,
	currency CHAR(3) NOT NULL,
	provider VARCHAR(50) NOT NULL,
	sale_rate DECIMAL(20, 6) NULL,
	purchase_rate DECIMAL(20, 6) NULL,
	created_at DATETIME NOT NULL,
	INDEX %s_date_currency (date, currency)
);`, s.tableName, s.tableName))

	return err
}

func (s sqlStorage) Drop(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s;", s.tableName))
	return err
}

func (s sqlStorage) Close() error {
	return s.db.Close()
}

func (s sqlStorage) Store(ctx context.Context, records []rates.RateRecord) ([]rates.RateRecordWithID, error) {
	saved := make([]rates.RateRecordWithID, 0, len(records))
	createdAt := time.Now().UTC().Truncate(time.Second)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s(id, date, currency, provider, sale_rate, purchase_rate, created_at) VALUES (?,?,?,?,?,?,?);",
		s.tableName,
	))
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		id := s.idGenerator.Generate()
		if len(id) < 16 {
			_ = tx.Rollback()
			return nil, ErrNotEnoughBytesInGenerator
		}

		date, err := time.Parse(rates.DateLayout, r.Date)
		if err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("invalid date %q: %w", r.Date, err)
		}

		_, err = stmt.ExecContext(
			ctx,
			id[:16],
			date.Format("2006-01-02"),
			r.Currency,
			string(rates.PrivatBankProvider),
			r.SaleRate,
			r.PurchaseRate,
			createdAt.Format(MySQLTimeFormat),
		)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}

		recordID, err := uuid.FromBytes(id[:16])
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}

		saved = append(saved, rates.RateRecordWithID{RateRecord: r, ID: recordID})
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return saved, nil
}
