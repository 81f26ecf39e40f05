package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	customerrors "github.com/avdonin/foodorders/internal/errors"
	"github.com/avdonin/foodorders/internal/storage/item"
	"github.com/avdonin/foodorders/internal/storage/order"
	_ "github.com/lib/pq"
)

type SqlWorker struct {
	DB *sql.DB
}

var DBWorker *SqlWorker

func NewSqlWorker(dsn string) (*SqlWorker, error) {
	DB, err := InitDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("Problem with init DB -> %w", err)
	}
	DBWorker = &SqlWorker{DB: DB}
	return DBWorker, nil
}

func InitDB(dsn string) (*sql.DB, error) {
	DB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("Problem with opening DB: %w", err)
	}
	err = DB.Ping()
	if err != nil {
		return nil, fmt.Errorf("Problem with pinging DB: %w", err)
	}
	return DB, nil
}

func (w *SqlWorker) CreateDefaultTables() error {
	query := "CREATE TABLE IF NOT EXISTS orders(" +
		"order_id TEXT PRIMARY KEY, status TEXT NOT NULL, order_type TEXT NOT NULL," +
		"code TEXT, total_price DOUBLE PRECISION, local_id TEXT, user_id TEXT);" +
		"CREATE TABLE IF NOT EXISTS items(" +
		"product_id TEXT, name TEXT, price DOUBLE PRECISION, count INTEGER," +
		"comment TEXT, order_id TEXT REFERENCES orders(order_id) ON DELETE CASCADE)"
	_, err := w.DB.Exec(query)
	if err != nil {
		return fmt.Errorf("Problem with execution of init query: %w", err)
	}
	return nil
}

func (w *SqlWorker) CreateTx() (*sql.Tx, error) {
	return w.DB.Begin()
}

func (w *SqlWorker) AddOrder(ctx context.Context, ord *order.Order) error {
	tx, err := w.CreateTx()
	if err != nil {
		return fmt.Errorf("Problem with creating of tx: %w", err)
	}
	query := "INSERT INTO orders(order_id, status, order_type, code, total_price, local_id, user_id)" +
		" VALUES($1, $2, $3, $4, $5, $6, $7)"
	_, err = tx.ExecContext(
		ctx, query, ord.OrderID, ord.Status, ord.Type,
		ord.Code, ord.TotalPrice, ord.LocalID, ord.UserID,
	)
	if err != nil {
		rollErr := tx.Rollback()
		return fmt.Errorf("Problem with execution of Add Order query: %w", errors.Join(err, rollErr))
	}
	err = w.AddItems(ctx, tx, ord.OrderID, ord.Items)
	if err != nil {
		return err
	}
	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("Problem with committing of Add Order tx: %w", err)
	}
	return nil
}

func (w *SqlWorker) AddItems(ctx context.Context, tx *sql.Tx, orderID string, items []item.Item) error {
	query := "INSERT INTO items(product_id, name, price, count, comment, order_id)" +
		" VALUES($1, $2, $3, $4, $5, $6)"
	for _, itm := range items {
		_, err := tx.ExecContext(
			ctx, query, itm.ProductID, itm.Name, itm.Price,
			itm.Count, itm.Comment, orderID,
		)
		if err != nil {
			rollErr := tx.Rollback()
			return fmt.Errorf("Problem with execution of Add Items query: %w", errors.Join(err, rollErr))
		}
	}
	return nil
}

func (w *SqlWorker) GetOrderByID(ctx context.Context, orderID string) (*order.Order, *customerrors.CustomError) {
	var customErr customerrors.CustomError
	query := "SELECT order_id, status, order_type, code, total_price, local_id, user_id" +
		" FROM orders WHERE order_id = $1"
	row := w.DB.QueryRowContext(ctx, query, orderID)
	ord := order.NewOrder()
	err := row.Scan(
		&ord.OrderID, &ord.Status, &ord.Type, &ord.Code,
		&ord.TotalPrice, &ord.LocalID, &ord.UserID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			customErr.Message = fmt.Sprintf("Order '%s' is not found", orderID)
			customErr.Status = http.StatusNotFound
			return nil, &customErr
		}
		customErr.Message = fmt.Errorf("Problem with execution of Get Order By ID scan: %w", err).Error()
		customErr.Status = http.StatusInternalServerError
		return nil, &customErr
	}
	itms, cErr := w.GetItemsByOrderID(ctx, orderID)
	if cErr != nil {
		return nil, cErr
	}
	ord.Items = itms
	return &ord, nil
}

func (w *SqlWorker) GetItemsByOrderID(ctx context.Context, orderID string) ([]item.Item, *customerrors.CustomError) {
	var customErr customerrors.CustomError
	query := "SELECT product_id, name, price, count, comment FROM items WHERE order_id = $1"
	rows, err := w.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		customErr.Message = fmt.Errorf("Problem with execution of Get Items By OrderID query: %w", err).Error()
		customErr.Status = http.StatusInternalServerError
		return nil, &customErr
	}
	defer rows.Close()
	itms := make([]item.Item, 0)
	for rows.Next() {
		var itm item.Item
		err = rows.Scan(&itm.ProductID, &itm.Name, &itm.Price, &itm.Count, &itm.Comment)
		if err != nil {
			customErr.Message = fmt.Errorf("Problem with execution of Get Items By OrderID scan: %w", err).Error()
			customErr.Status = http.StatusInternalServerError
			return nil, &customErr
		}
		itms = append(itms, itm)
	}
	err = rows.Err()
	if err != nil {
		customErr.Message = fmt.Errorf("Problem with execution of Get Items By OrderID rows.Err: %w", err).Error()
		customErr.Status = http.StatusInternalServerError
		return nil, &customErr
	}
	return itms, nil
}

func (w *SqlWorker) UpdateStatus(ctx context.Context, orderID string, status order.Status) (*order.Order, *customerrors.CustomError) {
	var customErr customerrors.CustomError
	query := "UPDATE orders SET status = $2 WHERE order_id = $1"
	res, err := w.DB.ExecContext(ctx, query, orderID, status)
	if err != nil {
		customErr.Message = fmt.Errorf("Problem with execution of Update Status query: %w", err).Error()
		customErr.Status = http.StatusInternalServerError
		return nil, &customErr
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		customErr.Message = fmt.Sprintf("Order '%s' is not found", orderID)
		customErr.Status = http.StatusNotFound
		return nil, &customErr
	}
	return w.GetOrderByID(ctx, orderID)
}

func (w *SqlWorker) DeleteOrderByID(ctx context.Context, orderID string) error {
	query := "DELETE FROM orders WHERE order_id = $1"
	_, err := w.DB.ExecContext(ctx, query, orderID)
	if err != nil {
		return fmt.Errorf("Problem with execution of Delete Order By ID: %w", err)
	}
	return nil
}
