// Seeds a development database with master data: account types, ledger
// groups, ledgers, vouchers, financial years, the voucher bindings and an
// admin user.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/millstone-erp/millstone-erp/internal/app"
	"github.com/millstone-erp/millstone-erp/internal/platform/db"
)

func main() {
	_ = godotenv.Load()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		slog.Default().Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	statements := []string{
		`INSERT INTO account_types (id, name) VALUES (1,'Asset'),(2,'Liability'),(3,'Income'),(4,'Expense') ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO ledger_groups (id, name) VALUES (1,'Current Assets'),(2,'Sales Accounts'),(3,'Purchase Accounts'),(4,'Sundry Debtors'),(5,'Sundry Creditors') ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO ledgers (id, name, code, account_type_id, group_id, status) VALUES
 (1,'Cash','CASH',1,1,'ACTIVE'),
 (2,'Bakery Counter Sales','SAL-001',3,2,'ACTIVE'),
 (3,'Flour Purchases','PUR-001',4,3,'ACTIVE'),
 (4,'Wholesale Customers','DEB-001',1,4,'ACTIVE'),
 (5,'Mill Suppliers','CRE-001',2,5,'ACTIVE')
 ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO vouchers (id, name) VALUES (1,'Sale'),(2,'Sale Return'),(3,'Purchase'),(4,'Purchase Return'),(5,'Stock Transfer'),(6,'Journal'),(7,'Payment'),(8,'Receipt') ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO app_settings (key, value) VALUES
 ('accounting.voucher.sale','1'),
 ('accounting.voucher.sale_return','2'),
 ('accounting.voucher.purchase','3'),
 ('accounting.voucher.purchase_return','4'),
 ('accounting.voucher.stock_transfer','5'),
 ('accounting.ledger.cash','1')
 ON CONFLICT (key) DO NOTHING`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			slog.Default().Error("seed statement failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	year := time.Now().Year()
	start := time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
	if time.Now().Before(start) {
		start = start.AddDate(-1, 0, 0)
	}
	end := start.AddDate(1, 0, -1)
	if _, err := pool.Exec(ctx, `INSERT INTO financial_years (start_date, end_date, locked, active)
VALUES ($1,$2,false,true) ON CONFLICT DO NOTHING`, start, end); err != nil {
		slog.Default().Error("seed financial year failed", slog.Any("error", err))
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("millstone"), bcrypt.DefaultCost)
	if err != nil {
		slog.Default().Error("hash password", slog.Any("error", err))
		os.Exit(1)
	}
	if _, err := pool.Exec(ctx, `INSERT INTO users (name, email, password_hash, is_admin, is_active)
VALUES ('Administrator','admin@millstone.local',$1,true,true) ON CONFLICT (email) DO NOTHING`, string(hash)); err != nil {
		slog.Default().Error("seed user failed", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Println("seed complete")
}
